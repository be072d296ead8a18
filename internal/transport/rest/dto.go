package rest

import (
	"time"

	"github.com/heartmarshall/research-ledger/internal/domain"
)

type resourceResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResourceResponse(r domain.Resource) resourceResponse {
	return resourceResponse{
		ID:        r.ID.String(),
		Kind:      r.Kind.String(),
		Title:     r.Title,
		CreatedBy: r.CreatedBy.String(),
		CreatedAt: r.CreatedAt,
	}
}

type versionResponse struct {
	ID                string         `json:"id"`
	Kind              string         `json:"kind"`
	ParentResourceID  string         `json:"parentResourceId"`
	Version           int            `json:"version"`
	Content           map[string]any `json:"content"`
	VersionHash       string         `json:"versionHash"`
	HashAlgorithm     string         `json:"hashAlgorithm"`
	PreviousVersionID *string        `json:"previousVersionId"`
	Status            string         `json:"status"`
	CreatedBy         string         `json:"createdBy"`
	CreatedAt         time.Time      `json:"createdAt"`
	LockedAt          *time.Time     `json:"lockedAt,omitempty"`
	LockedBy          *string        `json:"lockedBy,omitempty"`
}

func toVersionResponse(v domain.VersionedEntity) versionResponse {
	resp := versionResponse{
		ID:               v.ID.String(),
		Kind:             v.Kind.String(),
		ParentResourceID: v.ParentResourceID.String(),
		Version:          v.Version,
		Content:          v.Content,
		VersionHash:      v.VersionHash,
		HashAlgorithm:    v.HashAlgorithm,
		Status:           string(v.Status),
		CreatedBy:        v.CreatedBy.String(),
		CreatedAt:        v.CreatedAt,
		LockedAt:         v.LockedAt,
	}
	if v.PreviousVersionID != nil {
		s := v.PreviousVersionID.String()
		resp.PreviousVersionID = &s
	}
	if v.LockedBy != nil {
		s := v.LockedBy.String()
		resp.LockedBy = &s
	}
	return resp
}

type historyResponse struct {
	Versions          []versionResponse `json:"versions"`
	NextBeforeVersion int               `json:"nextBeforeVersion,omitempty"`
	HasMore           bool              `json:"hasMore"`
}

type entryResponse struct {
	ID            string         `json:"id"`
	Seq           int64          `json:"seq"`
	EventType     string         `json:"eventType"`
	UserID        *string        `json:"userId"`
	Action        string         `json:"action"`
	ResourceType  string         `json:"resourceType"`
	ResourceID    string         `json:"resourceId"`
	Details       map[string]any `json:"details"`
	CreatedAt     time.Time      `json:"createdAt"`
	PreviousHash  string         `json:"previousHash"`
	EntryHash     string         `json:"entryHash"`
	HashAlgorithm string         `json:"hashAlgorithm"`
}

func toEntryResponse(e domain.AuditEntry) entryResponse {
	resp := entryResponse{
		ID:            e.ID.String(),
		Seq:           e.Seq,
		EventType:     string(e.EventType),
		Action:        e.Action,
		ResourceType:  e.ResourceType,
		ResourceID:    e.ResourceID,
		Details:       e.Details,
		CreatedAt:     e.CreatedAt,
		PreviousHash:  e.PreviousHash,
		EntryHash:     e.EntryHash,
		HashAlgorithm: e.HashAlgorithm,
	}
	if e.UserID != nil {
		s := e.UserID.String()
		resp.UserID = &s
	}
	return resp
}

type entryPageResponse struct {
	Entries      []entryResponse `json:"entries"`
	NextAfterSeq int64           `json:"nextAfterSeq,omitempty"`
	HasMore      bool            `json:"hasMore"`
}

type verificationResponse struct {
	Valid            bool    `json:"valid"`
	EntriesValidated int     `json:"entriesValidated"`
	BrokenAt         *string `json:"brokenAt,omitempty"`
	Reason           string  `json:"reason,omitempty"`
	LastHash         string  `json:"lastHash,omitempty"`
}

func toVerificationResponse(v domain.ChainVerification) verificationResponse {
	resp := verificationResponse{
		Valid:            v.Valid,
		EntriesValidated: v.EntriesValidated,
		Reason:           string(v.Reason),
		LastHash:         v.LastHash,
	}
	if v.BrokenAt != nil {
		s := v.BrokenAt.String()
		resp.BrokenAt = &s
	}
	return resp
}

type diffLineResponse struct {
	Op      string `json:"op"`
	OldLine int    `json:"oldLine,omitempty"`
	NewLine int    `json:"newLine,omitempty"`
	Digest  string `json:"digest,omitempty"`
	Text    string `json:"text,omitempty"`
}

type diffResultResponse struct {
	ComparisonID          string             `json:"comparisonId"`
	FromVersionID         string             `json:"fromVersionId"`
	ToVersionID           string             `json:"toVersionId"`
	AddedLines            int                `json:"addedLines"`
	RemovedLines          int                `json:"removedLines"`
	UnchangedLines        int                `json:"unchangedLines"`
	Summary               string             `json:"summary"`
	ContainsSensitiveData bool               `json:"containsSensitiveData"`
	Lines                 []diffLineResponse `json:"lines"`
}

func toDiffResultResponse(d domain.DiffResult) diffResultResponse {
	resp := diffResultResponse{
		ComparisonID:          d.ComparisonID.String(),
		FromVersionID:         d.FromVersionID.String(),
		ToVersionID:           d.ToVersionID.String(),
		AddedLines:            d.AddedLines,
		RemovedLines:          d.RemovedLines,
		UnchangedLines:        d.UnchangedLines,
		Summary:               d.Summary,
		ContainsSensitiveData: d.ContainsSensitiveData,
		Lines:                 make([]diffLineResponse, 0, len(d.Lines)),
	}
	for _, l := range d.Lines {
		resp.Lines = append(resp.Lines, diffLineResponse{
			Op:      string(l.Operation),
			OldLine: l.OldLine,
			NewLine: l.NewLine,
			Digest:  l.Digest,
		})
	}
	return resp
}

type hunkResponse struct {
	OldStart int                `json:"oldStart"`
	OldLines int                `json:"oldLines"`
	NewStart int                `json:"newStart"`
	NewLines int                `json:"newLines"`
	Lines    []diffLineResponse `json:"lines"`
}

type unifiedDiffResponse struct {
	FromVersionID         string         `json:"fromVersionId"`
	ToVersionID           string         `json:"toVersionId"`
	Hunks                 []hunkResponse `json:"hunks"`
	Text                  string         `json:"text,omitempty"`
	TextIncluded          bool           `json:"textIncluded"`
	TextRedacted          bool           `json:"textRedacted"`
	ContainsSensitiveData bool           `json:"containsSensitiveData"`
}

func toUnifiedDiffResponse(u domain.UnifiedDiff) unifiedDiffResponse {
	resp := unifiedDiffResponse{
		FromVersionID:         u.FromVersionID.String(),
		ToVersionID:           u.ToVersionID.String(),
		Hunks:                 make([]hunkResponse, 0, len(u.Hunks)),
		Text:                  u.Text,
		TextIncluded:          u.TextIncluded,
		TextRedacted:          u.TextRedacted,
		ContainsSensitiveData: u.ContainsSensitiveData,
	}
	for _, h := range u.Hunks {
		hr := hunkResponse{
			OldStart: h.OldStart,
			OldLines: h.OldLines,
			NewStart: h.NewStart,
			NewLines: h.NewLines,
			Lines:    make([]diffLineResponse, 0, len(h.Lines)),
		}
		for _, l := range h.Lines {
			hr.Lines = append(hr.Lines, diffLineResponse{
				Op:      string(l.Operation),
				OldLine: l.OldLine,
				NewLine: l.NewLine,
				Digest:  l.Digest,
				Text:    l.Text,
			})
		}
		resp.Hunks = append(resp.Hunks, hr)
	}
	return resp
}

type comparisonResponse struct {
	ID                    string    `json:"id"`
	FromVersionID         string    `json:"fromVersionId"`
	ToVersionID           string    `json:"toVersionId"`
	Summary               string    `json:"summary"`
	AddedLines            int       `json:"addedLines"`
	RemovedLines          int       `json:"removedLines"`
	UnchangedLines        int       `json:"unchangedLines"`
	ContainsSensitiveData bool      `json:"containsSensitiveData"`
	CreatedBy             string    `json:"createdBy"`
	CreatedAt             time.Time `json:"createdAt"`
}

func toComparisonResponse(c domain.StoredComparison) comparisonResponse {
	return comparisonResponse{
		ID:                    c.ID.String(),
		FromVersionID:         c.FromVersionID.String(),
		ToVersionID:           c.ToVersionID.String(),
		Summary:               c.Summary,
		AddedLines:            c.AddedLines,
		RemovedLines:          c.RemovedLines,
		UnchangedLines:        c.UnchangedLines,
		ContainsSensitiveData: c.ContainsSensitiveData,
		CreatedBy:             c.CreatedBy.String(),
		CreatedAt:             c.CreatedAt,
	}
}
