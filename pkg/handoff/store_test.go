package handoff

import (
	"context"
	"testing"

	"github.com/bdbl/loan-verification-api/pkg/formdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFormData(name string) formdata.CanonicalFormData {
	data := formdata.New()
	data.Set(formdata.FieldApplicantName, name)
	data.Seal(true)
	return data
}

func TestKey_String(t *testing.T) {
	key := Key{SessionID: "sess-1", Source: SourceNDI}

	assert.Equal(t, "handoff:sess-1:ndi", key.String())
}

func TestSource_Valid(t *testing.T) {
	assert.True(t, SourceCustomer.Valid())
	assert.True(t, SourceNDI.Valid())
	assert.False(t, Source("paper").Valid())
	assert.False(t, Source("").Valid())
}

func TestSource_Other(t *testing.T) {
	assert.Equal(t, SourceNDI, SourceCustomer.Other())
	assert.Equal(t, SourceCustomer, SourceNDI.Other())
}

func TestMemoryStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	key := Key{SessionID: "sess-1", Source: SourceCustomer}
	data := testFormData("Tashi Wangmo")

	require.NoError(t, store.Put(ctx, key, data))

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), Key{SessionID: "nope", Source: SourceNDI})

	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_PutClearsOppositeSource(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	customerKey := Key{SessionID: "sess-1", Source: SourceCustomer}
	ndiKey := customerKey.Other()

	require.NoError(t, store.Put(ctx, customerKey, testFormData("from customer path")))
	require.NoError(t, store.Put(ctx, ndiKey, testFormData("from ndi path")))

	_, err := store.Get(ctx, customerKey)
	require.ErrorIs(t, err, ErrNotFound, "switching paths must drop the abandoned path's data")

	got, err := store.Get(ctx, ndiKey)
	require.NoError(t, err)
	assert.Equal(t, "from ndi path", got.Get(formdata.FieldApplicantName))
}

func TestMemoryStore_PutDoesNotTouchOtherSessions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	keyA := Key{SessionID: "sess-a", Source: SourceCustomer}
	keyB := Key{SessionID: "sess-b", Source: SourceNDI}

	require.NoError(t, store.Put(ctx, keyA, testFormData("a")))
	require.NoError(t, store.Put(ctx, keyB, testFormData("b")))

	_, err := store.Get(ctx, keyA)
	require.NoError(t, err)
}

func TestMemoryStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	key := Key{SessionID: "sess-1", Source: SourceNDI}
	require.NoError(t, store.Put(ctx, key, testFormData("x")))

	require.NoError(t, store.Clear(ctx, key))

	_, err := store.Get(ctx, key)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ClearMissingIsNoError(t *testing.T) {
	store := NewMemoryStore()

	err := store.Clear(context.Background(), Key{SessionID: "nope", Source: SourceCustomer})

	require.NoError(t, err)
}
