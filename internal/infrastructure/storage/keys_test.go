package storage_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Hiro-mackay/tripshare/internal/infrastructure/storage"
)

func TestPhotoKey_UnderGroupPrefix(t *testing.T) {
	groupID := uuid.New()
	photoID := uuid.New()

	key := storage.PhotoKey(groupID, photoID)

	assert.True(t, strings.HasPrefix(key, storage.GroupMediaPrefix(groupID)))
	assert.Equal(t, "groups/"+groupID.String()+"/photos/"+photoID.String(), key)
}

func TestGroupMediaPrefix_DoesNotMatchOtherGroups(t *testing.T) {
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	b := uuid.MustParse("11111111-1111-1111-1111-111111111112")

	assert.False(t, strings.HasPrefix(storage.PhotoKey(b, uuid.New()), storage.GroupMediaPrefix(a)))
}
