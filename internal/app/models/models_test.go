package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yigit/devcamper/internal/pkg/apperrors"
)

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()
	parsed, err := ParseID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, parsed)

	_, err = ParseID("5d713995b721c3bb38c1f5d0x")
	var castErr *apperrors.CastError
	require.True(t, errors.As(err, &castErr))
	assert.Equal(t, "5d713995b721c3bb38c1f5d0x", castErr.Value)
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
}

func TestPopulate(t *testing.T) {
	b := &Bootcamp{ID: primitive.NewObjectID(), Name: "Devworks", Description: "d"}
	c := &Course{ID: primitive.NewObjectID(), Title: "T1", Bootcamp: b.ID}

	p := c.Populate(b.Summary())
	assert.Equal(t, c.ID, p.ID)
	assert.Equal(t, "Devworks", p.Bootcamp.Name)

	assert.Nil(t, c.Populate(nil).Bootcamp)
}
