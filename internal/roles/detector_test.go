package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_EmptyEvidence(t *testing.T) {
	det := Detect(NewEvidence())

	assert.Equal(t, "", det.Role)
	assert.Equal(t, 0.0, det.Confidence)
	assert.Empty(t, det.Alternatives)
}

func TestDetect_NilEvidence(t *testing.T) {
	det := Detect(nil)
	assert.Equal(t, "", det.Role)
}

func TestDetect_SingleRoleFullConfidence(t *testing.T) {
	ev := NewEvidence()
	ev.AddTitle("software engineer", 5, "software engineer")

	det := Detect(ev)

	assert.Equal(t, "software engineer", det.Role)
	assert.Equal(t, 1.0, det.Confidence)
	assert.Empty(t, det.Alternatives)
}

func TestDetect_ConfidenceIsShareOfTotal(t *testing.T) {
	ev := NewEvidence()
	ev.Add("software engineer", 6)
	ev.Add("data engineer", 2)

	det := Detect(ev)

	assert.Equal(t, "software engineer", det.Role)
	assert.Equal(t, 0.75, det.Confidence)
	if assert.Len(t, det.Alternatives, 1) {
		assert.Equal(t, "data engineer", det.Alternatives[0].Role)
		assert.Equal(t, 0.25, det.Alternatives[0].Confidence)
	}
}

func TestDetect_TieBrokenByLongestTitleMatch(t *testing.T) {
	ev := NewEvidence()
	ev.AddTitle("engineering manager", 5, "engineering manager")
	ev.AddTitle("product manager", 5, "manager")

	det := Detect(ev)

	assert.Equal(t, "engineering manager", det.Role)
}

func TestDetect_TieBrokenByNameLast(t *testing.T) {
	ev := NewEvidence()
	ev.Add("data engineer", 3)
	ev.Add("data scientist", 3)

	det := Detect(ev)

	assert.Equal(t, "data engineer", det.Role)
}

func TestDetect_AlternativesCapped(t *testing.T) {
	ev := NewEvidence()
	ev.Add("software engineer", 10)
	ev.Add("data engineer", 4)
	ev.Add("data scientist", 3)
	ev.Add("devops engineer", 2)
	ev.Add("product manager", 1)

	det := Detect(ev)

	assert.Equal(t, "software engineer", det.Role)
	assert.Len(t, det.Alternatives, 3)
	assert.Equal(t, "data engineer", det.Alternatives[0].Role)
}

func TestEvidence_IgnoresInvalidInput(t *testing.T) {
	ev := NewEvidence()
	ev.Add("", 5)
	ev.Add("software engineer", 0)
	ev.Add("software engineer", -2)

	assert.True(t, ev.Empty())
}
