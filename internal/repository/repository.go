// Package repository implements the document-store access layer. All
// cross-entity references are weak id lists: batch lookups preserve the input
// order and yield nil for ids that match nothing.
package repository

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dscnitrourkela/project-nutella/internal/apperror"
)

// ParseObjectID converts a client-supplied hex id, failing with a validation
// error on malformed input.
func ParseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed id %q", apperror.ErrValidation, id)
	}
	return oid, nil
}

// parseStoredIDs converts an id list coming from stored documents. Malformed
// entries are skipped; they can never match a document anyway.
func parseStoredIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return oids
}
