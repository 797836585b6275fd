package core

import (
	"errors"
	"testing"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name: "valid document",
			doc: &Document{
				SourceID: 1,
				Title:    "Procédure résiliation",
				Filename: "procedure_resiliation.txt",
				Text:     "La résiliation doit être enregistrée dans le CRM.",
			},
			wantErr: nil,
		},
		{
			name: "valid document without optional metadata",
			doc: &Document{
				SourceID: 7,
				Title:    "Notes",
				Text:     "Quelques notes.",
			},
			wantErr: nil,
		},
		{
			name: "valid document with empty vector",
			doc: &Document{
				SourceID: 2,
				Title:    "Contrat",
				Text:     "Clauses du contrat.",
				Vector:   nil,
			},
			wantErr: nil,
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name: "zero source id",
			doc: &Document{
				SourceID: 0,
				Title:    "Contrat",
				Text:     "Clauses.",
			},
			wantErr: ErrInvalidSourceID,
		},
		{
			name: "negative source id",
			doc: &Document{
				SourceID: -4,
				Title:    "Contrat",
				Text:     "Clauses.",
			},
			wantErr: ErrInvalidSourceID,
		},
		{
			name: "empty title",
			doc: &Document{
				SourceID: 3,
				Title:    "",
				Text:     "Clauses.",
			},
			wantErr: ErrEmptyTitle,
		},
		{
			name: "empty text",
			doc: &Document{
				SourceID: 3,
				Title:    "Contrat",
				Text:     "",
			},
			wantErr: ErrEmptyText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateOwner(t *testing.T) {
	tests := []struct {
		name    string
		owner   Owner
		wantErr bool
	}{
		{name: "valid owner", owner: Owner{ClientID: 1, UserID: 2}, wantErr: false},
		{name: "zero client id", owner: Owner{ClientID: 0, UserID: 2}, wantErr: true},
		{name: "zero user id", owner: Owner{ClientID: 1, UserID: 0}, wantErr: true},
		{name: "negative ids", owner: Owner{ClientID: -1, UserID: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOwner(tt.owner)
			if tt.wantErr && !errors.Is(err, ErrInvalidOwner) {
				t.Errorf("ValidateOwner() error = %v, want ErrInvalidOwner", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateOwner() error = %v, want nil", err)
			}
		})
	}
}
