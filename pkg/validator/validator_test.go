package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSignup(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		errs := ValidateSignup("Alice", "alice@example.com", "secret123",
			[]string{"Go"}, []string{"Photography"}, []string{"weekends"})
		assert.False(t, errs.HasErrors())
	})

	tests := []struct {
		name     string
		mutate   func() ValidationErrors
		badField string
	}{
		{"missing name", func() ValidationErrors {
			return ValidateSignup("  ", "a@b.com", "secret123", nil, nil, nil)
		}, "name"},
		{"name too long", func() ValidationErrors {
			return ValidateSignup(strings.Repeat("a", 101), "a@b.com", "secret123", nil, nil, nil)
		}, "name"},
		{"missing email", func() ValidationErrors {
			return ValidateSignup("Alice", "", "secret123", nil, nil, nil)
		}, "email"},
		{"bad email", func() ValidationErrors {
			return ValidateSignup("Alice", "not-an-email", "secret123", nil, nil, nil)
		}, "email"},
		{"short password", func() ValidationErrors {
			return ValidateSignup("Alice", "a@b.com", "12345", nil, nil, nil)
		}, "password"},
		{"too many skills", func() ValidationErrors {
			skills := make([]string, 21)
			for i := range skills {
				skills[i] = "skill"
			}
			return ValidateSignup("Alice", "a@b.com", "secret123", skills, nil, nil)
		}, "skillsOffered"},
		{"blank skill", func() ValidationErrors {
			return ValidateSignup("Alice", "a@b.com", "secret123", nil, []string{" "}, nil)
		}, "skillsWanted"},
		{"unknown availability", func() ValidationErrors {
			return ValidateSignup("Alice", "a@b.com", "secret123", nil, nil, []string{"midnight"})
		}, "availability"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.mutate()
			assert.Contains(t, errs, tt.badField)
		})
	}
}

func TestValidateSwapCreate(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		errs := ValidateSwapCreate("Go", "Photography", "Trade?", "online", "2 hours", "Zoom")
		assert.False(t, errs.HasErrors())
	})

	t.Run("empty meeting type allowed", func(t *testing.T) {
		errs := ValidateSwapCreate("Go", "Photography", "", "", "", "")
		assert.False(t, errs.HasErrors())
	})

	t.Run("missing skills", func(t *testing.T) {
		errs := ValidateSwapCreate(" ", "", "", "", "", "")
		assert.Contains(t, errs, "offeredSkill")
		assert.Contains(t, errs, "requestedSkill")
	})

	t.Run("bad meeting type", func(t *testing.T) {
		errs := ValidateSwapCreate("Go", "Photography", "", "telepathy", "", "")
		assert.Contains(t, errs, "meetingType")
	})

	t.Run("message too long", func(t *testing.T) {
		errs := ValidateSwapCreate("Go", "Photography", strings.Repeat("x", 1001), "", "", "")
		assert.Contains(t, errs, "message")
	})
}

func TestValidateSwapStatusUpdate(t *testing.T) {
	for _, status := range []string{"accepted", "rejected", "completed", "cancelled"} {
		t.Run(status, func(t *testing.T) {
			errs := ValidateSwapStatusUpdate(status, "", "")
			assert.False(t, errs.HasErrors())
		})
	}

	t.Run("missing status", func(t *testing.T) {
		assert.Contains(t, ValidateSwapStatusUpdate("", "", ""), "status")
	})

	t.Run("pending is not a target", func(t *testing.T) {
		assert.Contains(t, ValidateSwapStatusUpdate("pending", "", ""), "status")
	})

	t.Run("unknown status", func(t *testing.T) {
		assert.Contains(t, ValidateSwapStatusUpdate("paused", "", ""), "status")
	})

	t.Run("reason too long", func(t *testing.T) {
		long := strings.Repeat("x", 501)
		assert.Contains(t, ValidateSwapStatusUpdate("rejected", long, ""), "rejectionReason")
		assert.Contains(t, ValidateSwapStatusUpdate("cancelled", "", long), "cancellationReason")
	})
}

func TestValidateFeedback(t *testing.T) {
	assert.False(t, ValidateFeedback(5, "Great teacher").HasErrors())
	assert.False(t, ValidateFeedback(1, "").HasErrors())

	assert.Contains(t, ValidateFeedback(0, ""), "rating")
	assert.Contains(t, ValidateFeedback(6, ""), "rating")
	assert.Contains(t, ValidateFeedback(3, strings.Repeat("x", 501)), "comment")
}

func TestValidateProfileUpdate(t *testing.T) {
	t.Run("nil fields skip checks", func(t *testing.T) {
		errs := ValidateProfileUpdate(nil, nil, nil, nil, nil, nil)
		assert.False(t, errs.HasErrors())
	})

	t.Run("empty name rejected when set", func(t *testing.T) {
		name := ""
		errs := ValidateProfileUpdate(&name, nil, nil, nil, nil, nil)
		assert.Contains(t, errs, "name")
	})

	t.Run("bio too long", func(t *testing.T) {
		bio := strings.Repeat("x", 1001)
		errs := ValidateProfileUpdate(nil, nil, &bio, nil, nil, nil)
		assert.Contains(t, errs, "bio")
	})
}
