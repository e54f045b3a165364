// Package domain defines form submissions as the dashboard sees them: CRM
// interactions enriched with constituent details and local status flags.
package domain

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	apperrors "github.com/lovelifenow/admin-api/internal/errors"
)

// FormType identifies one of the site's forms. Each form writes interactions
// to its own Bloomerang channel.
type FormType string

const (
	FormContact   FormType = "contact"
	FormVolunteer FormType = "volunteer"
	FormSpeaker   FormType = "speaker"
	FormGetSafe   FormType = "getsafe"
	FormDonate    FormType = "donate"
)

// formChannels maps each form type to its Bloomerang channel ID.
var formChannels = map[FormType]int64{
	FormContact:   1050624,
	FormVolunteer: 1048576,
	FormSpeaker:   763905,
	FormGetSafe:   748544,
	FormDonate:    535552,
}

// formGroups maps public form names to Bloomerang group IDs for newsletter
// and interest segmentation.
var formGroups = map[string]int64{
	"book-a-speaker": 1298433,
	"contact-us":     1299457,
	"donate":         1300481,
	"get-safe-fund":  32769,
	"newsletter":     1302529,
	"volunteer":      1303553,
}

// ParseFormType validates a form type string from a request.
func ParseFormType(s string) (FormType, error) {
	formType := FormType(s)
	if _, ok := formChannels[formType]; !ok {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput,
			"invalid form type, valid types: "+strings.Join(ValidFormTypes(), ", "))
	}
	return formType, nil
}

// ChannelID returns the Bloomerang channel for the form type.
func (f FormType) ChannelID() int64 {
	return formChannels[f]
}

// ValidFormTypes lists the accepted form type names, sorted.
func ValidFormTypes() []string {
	names := make([]string, 0, len(formChannels))
	for formType := range formChannels {
		names = append(names, string(formType))
	}
	sort.Strings(names)
	return names
}

// ResolveGroup maps a public form name to its Bloomerang group ID.
func ResolveGroup(formName string) (int64, error) {
	groupID, ok := formGroups[formName]
	if !ok {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput,
			"invalid form name, valid names: "+strings.Join(ValidFormNames(), ", "))
	}
	return groupID, nil
}

// ValidFormNames lists the accepted public form names, sorted.
func ValidFormNames() []string {
	names := make([]string, 0, len(formGroups))
	for name := range formGroups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConstituentSummary is the enriched person behind a submission. Nil when the
// interaction has no account or the constituent lookup failed.
type ConstituentSummary struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// Submission is one dashboard row.
type Submission struct {
	ID           int64               `json:"id"`
	Date         string              `json:"date"`
	Subject      string              `json:"subject"`
	Note         string              `json:"note"`
	Channel      string              `json:"channel"`
	Constituent  *ConstituentSummary `json:"constituent"`
	CustomFields []json.RawMessage   `json:"customFields"`
	Status       *Status             `json:"status,omitempty"`
}

// Page is one page of submissions for a form type.
type Page struct {
	FormType    FormType      `json:"formType"`
	Total       int           `json:"total"`
	Submissions []*Submission `json:"submissions"`
}

// Status holds the dashboard-local flags for a submission. Bloomerang is the
// source of truth for the submission itself; these flags only exist here.
type Status struct {
	FormType     FormType  `json:"formType"`
	SubmissionID int64     `json:"submissionId"`
	IsRead       bool      `json:"isRead"`
	IsArchived   bool      `json:"isArchived"`
	IsDeleted    bool      `json:"isDeleted"`
	Notes        string    `json:"notes"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// StatusPatch is a partial status update; nil fields are left unchanged.
type StatusPatch struct {
	IsRead     *bool   `json:"isRead"`
	IsArchived *bool   `json:"isArchived"`
	IsDeleted  *bool   `json:"isDeleted"`
	Notes      *string `json:"notes"`
}

// Empty reports whether the patch changes nothing.
func (p *StatusPatch) Empty() bool {
	return p.IsRead == nil && p.IsArchived == nil && p.IsDeleted == nil && p.Notes == nil
}
