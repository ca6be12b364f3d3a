package ports

import (
	"context"
	"time"
)

// A declared disaster affecting a state.
type DisasterDeclaration struct {
	DisasterNumber  int
	State           string
	DeclarationType string
	IncidentType    string
	Title           string
	DeclarationDate time.Time
	DesignatedArea  string
}

// Contract for listing recent disaster declarations.
type DisasterProvider interface {
	RecentDeclarations(ctx context.Context, state string, limit int) ([]DisasterDeclaration, error)
}
