package validator

import (
	"net/mail"
	"strings"

	"github.com/InMostCalmness-Rahul/skillswap/internal/domain"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

const (
	maxNameLen     = 100
	maxLocationLen = 200
	maxBioLen      = 1000
	maxSkillLen    = 100
	maxSkills      = 20
	maxMessageLen  = 1000
	maxReasonLen   = 500
	maxCommentLen  = 500
	maxDurationLen = 100
)

func ValidateSignup(name, email, password string, skillsOffered, skillsWanted, availability []string) ValidationErrors {
	errs := make(ValidationErrors)

	validateName(name, errs)
	validateEmail(email, errs)

	if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}

	validateSkillList("skillsOffered", skillsOffered, errs)
	validateSkillList("skillsWanted", skillsWanted, errs)
	validateAvailability(availability, errs)

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)
	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateProfileUpdate(name, location, bio *string, skillsOffered, skillsWanted, availability []string) ValidationErrors {
	errs := make(ValidationErrors)

	if name != nil {
		validateName(*name, errs)
	}
	if location != nil && len(*location) > maxLocationLen {
		errs.Add("location", "Location cannot exceed 200 characters")
	}
	if bio != nil && len(*bio) > maxBioLen {
		errs.Add("bio", "Bio cannot exceed 1000 characters")
	}
	validateSkillList("skillsOffered", skillsOffered, errs)
	validateSkillList("skillsWanted", skillsWanted, errs)
	validateAvailability(availability, errs)

	return errs
}

func ValidateSwapCreate(offeredSkill, requestedSkill, message, meetingType, duration, meetingDetails string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(offeredSkill) == "" {
		errs.Add("offeredSkill", "Offered skill is required")
	} else if len(offeredSkill) > maxSkillLen {
		errs.Add("offeredSkill", "Offered skill cannot exceed 100 characters")
	}

	if strings.TrimSpace(requestedSkill) == "" {
		errs.Add("requestedSkill", "Requested skill is required")
	} else if len(requestedSkill) > maxSkillLen {
		errs.Add("requestedSkill", "Requested skill cannot exceed 100 characters")
	}

	if len(message) > maxMessageLen {
		errs.Add("message", "Message cannot exceed 1000 characters")
	}
	if len(duration) > maxDurationLen {
		errs.Add("duration", "Duration cannot exceed 100 characters")
	}
	if len(meetingDetails) > maxReasonLen {
		errs.Add("meetingDetails", "Meeting details cannot exceed 500 characters")
	}
	if meetingType != "" && meetingType != domain.MeetingOnline && meetingType != domain.MeetingInPerson && meetingType != domain.MeetingHybrid {
		errs.Add("meetingType", "Meeting type must be online, in-person, or hybrid")
	}

	return errs
}

func ValidateSwapStatusUpdate(status string, rejectionReason, cancellationReason string) ValidationErrors {
	errs := make(ValidationErrors)

	if status == "" {
		errs.Add("status", "Status is required")
	} else if !domain.SwapStatus(status).Valid() || status == string(domain.SwapPending) {
		errs.Add("status", "Status must be accepted, rejected, completed, or cancelled")
	}

	if len(rejectionReason) > maxReasonLen {
		errs.Add("rejectionReason", "Rejection reason cannot exceed 500 characters")
	}
	if len(cancellationReason) > maxReasonLen {
		errs.Add("cancellationReason", "Cancellation reason cannot exceed 500 characters")
	}

	return errs
}

func ValidateFeedback(rating int, comment string) ValidationErrors {
	errs := make(ValidationErrors)

	if rating < 1 || rating > 5 {
		errs.Add("rating", "Rating must be between 1 and 5")
	}
	if len(comment) > maxCommentLen {
		errs.Add("comment", "Comment cannot exceed 500 characters")
	}

	return errs
}

func validateName(name string, errs ValidationErrors) {
	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "Name is required")
	} else if len(name) > maxNameLen {
		errs.Add("name", "Name cannot exceed 100 characters")
	}
}

func validateEmail(email string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}
}

func validateSkillList(field string, skills []string, errs ValidationErrors) {
	if len(skills) > maxSkills {
		errs.Add(field, "Cannot list more than 20 skills")
		return
	}
	for _, s := range skills {
		if strings.TrimSpace(s) == "" {
			errs.Add(field, "Skill names cannot be empty")
			return
		}
		if len(s) > maxSkillLen {
			errs.Add(field, "Skill name cannot exceed 100 characters")
			return
		}
	}
}

func validateAvailability(tags []string, errs ValidationErrors) {
	for _, t := range tags {
		if !domain.ValidAvailability(t) {
			errs.Add("availability", "Availability must be one of: "+strings.Join(domain.AvailabilityTags, ", "))
			return
		}
	}
}
