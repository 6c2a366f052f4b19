package services

import (
	"fmt"
	"strings"

	"github.com/Daniru12/PcStore/internal/models"
)

// ValidationError reports malformed or missing required input. The request
// must be corrected before retrying.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NotFoundError reports that one or more referenced identifiers do not exist.
// Resource names the item kind ("order", "part", "pc", ...). Name is used
// when the lookup key is not numeric.
type NotFoundError struct {
	Resource string
	IDs      []uint
	Name     string
}

func (e *NotFoundError) Error() string {
	if len(e.IDs) == 0 {
		if e.Name != "" {
			return fmt.Sprintf("%s not found: %s", e.Resource, e.Name)
		}
		return e.Resource + " not found"
	}
	if len(e.IDs) == 1 {
		return fmt.Sprintf("%s not found with id: %d", e.Resource, e.IDs[0])
	}
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("%ss not found with ids: %s", e.Resource, strings.Join(parts, ", "))
}

// IllegalStateError reports a status transition not permitted from the
// order's current status.
type IllegalStateError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *IllegalStateError) Error() string {
	if e.From.IsTerminal() {
		return fmt.Sprintf("order is %s: no further transition is permitted", e.From)
	}
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// ConflictError reports a stale optimistic version on a concurrent update.
type ConflictError struct {
	Resource string
	ID       uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d was modified concurrently, reload and retry", e.Resource, e.ID)
}
