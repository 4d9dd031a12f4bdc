package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// User fields
	"FirstName":         "First name",
	"LastName":          "Last name",
	"Phone":             "Phone number",
	"PreferredLanguage": "Preferred language",
	"Timezone":          "Timezone",
	"Email":             "Email",
	"Password":          "Password",
	"UserType":          "User type",

	// Profile fields
	"Headline":           "Headline",
	"Bio":                "Bio",
	"DateOfBirth":        "Date of birth",
	"Gender":             "Gender",
	"Country":            "Country",
	"City":               "City",
	"AvailabilityStatus": "Availability status",
	"ExpectedSalaryMin":  "Minimum expected salary",
	"ExpectedSalaryMax":  "Maximum expected salary",
	"SalaryCurrency":     "Salary currency",
	"NoticePeriodDays":   "Notice period",
	"WorkPreference":     "Work preference",
	"VideoIntroURL":      "Video intro URL",
	"ProfileVisibility":  "Profile visibility",
	"PortfolioLinks":     "Portfolio links",

	// Experience fields
	"CompanyName":    "Company name",
	"JobTitle":       "Job title",
	"EmploymentType": "Employment type",
	"Location":       "Location",
	"StartDate":      "Start date",
	"EndDate":        "End date",
	"Description":    "Description",

	// Education fields
	"InstitutionName": "Institution name",
	"Degree":          "Degree",
	"FieldOfStudy":    "Field of study",
	"StartYear":       "Start year",
	"EndYear":         "End year",
	"Grade":           "Grade",

	// Skill / language fields
	"SkillID":         "Skill",
	"Proficiency":     "Proficiency",
	"YearsExperience": "Years of experience",
	"LanguageCode":    "Language code",
	"LanguageName":    "Language name",

	// Certification fields
	"Title":         "Title",
	"IssuingOrg":    "Issuing organization",
	"IssuedDate":    "Issue date",
	"ExpiryDate":    "Expiry date",
	"CredentialID":  "Credential ID",
	"CredentialURL": "Credential URL",
}

// FormatValidationErrors converts validator.ValidationErrors to a flat
// ordered list of human-readable messages. Every violation is reported,
// not just the first.
func FormatValidationErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)

	case "gte":
		return fmt.Sprintf("%s must be %s or greater", label, param)

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Split(param, " "), ", "))

	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)

	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)

	case "e164_phone":
		return fmt.Sprintf("%s must be in E.164 format (+ followed by 7-15 digits)", label)

	case "currency_code":
		return fmt.Sprintf("%s must be a 3-letter currency code", label)

	case "datetime":
		return fmt.Sprintf("%s must be a valid date (%s)", label, param)

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	// Fall back to the field name with spaces between camelCase words
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
