package field_test

import (
	"testing"

	"github.com/syssam/gom/codec"
	"github.com/syssam/gom/schema/field"

	"github.com/stretchr/testify/assert"
)

func TestInt64Defaults(t *testing.T) {
	d := field.Int64("id").Descriptor()
	assert.Equal(t, "id", d.Name)
	assert.Equal(t, "id", d.Column)
	assert.Equal(t, codec.KindInt64, d.Kind)
	assert.Equal(t, 1, d.VersionIntroduced)
	assert.False(t, d.PrimaryKey)
}

func TestPrimaryImpliesNotNull(t *testing.T) {
	d := field.Int64("id").Primary().AutoGenerated().Descriptor()
	assert.True(t, d.PrimaryKey)
	assert.True(t, d.NotNull)
	assert.True(t, d.AutoGenerated)
}

func TestUniqueAndColumnOverride(t *testing.T) {
	d := field.Text("email").Unique().NotNull().Column("email_address").Descriptor()
	assert.True(t, d.Unique)
	assert.True(t, d.NotNull)
	assert.Equal(t, "email_address", d.Column)
}

func TestEnumValues(t *testing.T) {
	d := field.Enum("status", "pending", "active", "inactive").Descriptor()
	assert.Equal(t, codec.KindEnum, d.Kind)
	assert.Equal(t, []string{"pending", "active", "inactive"}, d.EnumValues)
}

func TestVersionIntroduced(t *testing.T) {
	d := field.Text("thumbnail-url").Version(2).Descriptor()
	assert.Equal(t, 2, d.VersionIntroduced)
}

func TestReferenceField(t *testing.T) {
	d := field.ReferenceField("author_id", "users", "id").Descriptor()
	assert.Equal(t, codec.KindReference, d.Kind)
	if assert.NotNil(t, d.Reference) {
		assert.Equal(t, "users", d.Reference.Table)
		assert.Equal(t, "id", d.Reference.Column)
	}
}

func TestUUIDGeneratesDistinctDefaults(t *testing.T) {
	d := field.UUID("id").Primary().Descriptor()
	assert.Equal(t, codec.KindText, d.Kind)
	if assert.NotNil(t, d.Default) {
		a := d.Default().(string)
		b := d.Default().(string)
		assert.NotEmpty(t, a)
		assert.NotEqual(t, a, b)
	}
}

func TestTransformLeavesKindStorageUnchanged(t *testing.T) {
	d := field.Int64("amount").
		Transform(
			func(v any) ([]byte, error) { return []byte{byte(v.(int))}, nil },
			func(b []byte) (any, error) { return int(b[0]), nil },
		).
		Descriptor()
	assert.NotNil(t, d.Transform)
	storage, err := d.Kind.Storage()
	assert.NoError(t, err)
	// Kind itself still reports INTEGER storage; callers that see a
	// non-nil Transform must override this to BLOB (codec.Bind/Read do).
	assert.Equal(t, codec.StorageInteger, storage)
}
