package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func mustStruct(t *testing.T, fields map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func TestValidateCheckFeeRequest(t *testing.T) {
	valid := map[string]interface{}{
		FieldCommand:     "renew",
		FieldDomainName:  "premium.example",
		FieldRegistrarID: "TheRegistrar",
	}

	tests := []struct {
		name    string
		mutate  func(map[string]interface{})
		wantErr string
	}{
		{"valid", func(map[string]interface{}) {}, ""},
		{"missing command", func(m map[string]interface{}) { delete(m, FieldCommand) }, "command is required"},
		{"unknown command", func(m map[string]interface{}) { m[FieldCommand] = "delete" }, `unknown command "delete"`},
		{"missing domain", func(m map[string]interface{}) { delete(m, FieldDomainName) }, "domain_name is required"},
		{"missing registrar", func(m map[string]interface{}) { delete(m, FieldRegistrarID) }, "registrar_id is required"},
		{"fractional years", func(m map[string]interface{}) { m[FieldYears] = 1.5 }, "years must be an integer"},
		{"string years", func(m map[string]interface{}) { m[FieldYears] = "2" }, "years must be a number"},
		{"bad as_of", func(m map[string]interface{}) { m[FieldAsOf] = "yesterday" }, "as_of must be an RFC 3339 timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := make(map[string]interface{}, len(valid))
			for k, v := range valid {
				fields[k] = v
			}
			tt.mutate(fields)

			err := validateCheckFeeRequest(mustStruct(t, fields))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateGetTokenRequest(t *testing.T) {
	assert.Equal(t, codes.InvalidArgument, status.Code(validateGetTokenRequest(nil)))
	assert.Equal(t, codes.InvalidArgument, status.Code(validateGetTokenRequest(mustStruct(t, nil))))
	assert.NoError(t, validateGetTokenRequest(mustStruct(t, map[string]interface{}{FieldToken: "abc123"})))
}

func TestValidateListEventsRequest(t *testing.T) {
	assert.NoError(t, validateListEventsRequest(nil))
	assert.NoError(t, validateListEventsRequest(mustStruct(t, map[string]interface{}{FieldLimit: 10})))
	assert.Equal(t, codes.InvalidArgument,
		status.Code(validateListEventsRequest(mustStruct(t, map[string]interface{}{FieldLimit: -1}))))
}

func TestOptionalStringField(t *testing.T) {
	s := mustStruct(t, map[string]interface{}{"empty": "", "null": nil, "set": "x"})

	assert.Nil(t, optionalStringField(s, "absent"))
	assert.Nil(t, optionalStringField(s, "null"))
	require.NotNil(t, optionalStringField(s, "empty"))
	assert.Equal(t, "", *optionalStringField(s, "empty"))
	assert.Equal(t, "x", *optionalStringField(s, "set"))
}
