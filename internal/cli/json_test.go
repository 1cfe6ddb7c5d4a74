package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sockwatch/internal/errors"
)

func TestWriteJSONSuccess_BasicData(t *testing.T) {
	var buf bytes.Buffer

	err := WriteJSONSuccess(&buf, map[string]string{"key": "value"})
	require.NoError(t, err)

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.True(t, env.Success)
	assert.Nil(t, env.Error)

	dataMap, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", dataMap["key"])
}

func TestWriteJSONSuccess_ListResult(t *testing.T) {
	var buf bytes.Buffer

	res := &listResult{
		TCPCount: 1,
		Sockets: []socketRow{{
			Proto:  "tcp4",
			Local:  "127.0.0.1:22",
			Remote: "0.0.0.0:0",
			State:  "LISTEN",
			PIDs:   []int32{42},
		}},
	}
	require.NoError(t, WriteJSONSuccess(&buf, res))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	dataMap, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), dataMap["tcp_count"]) // JSON numbers are float64
	assert.Equal(t, float64(0), dataMap["udp_count"])
	rows, ok := dataMap["sockets"].([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 1)
	assert.Equal(t, "LISTEN", rows[0].(map[string]interface{})["state"])
}

func TestWriteJSONSuccess_NilData(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSONSuccess(&buf, nil))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.True(t, env.Success)
	assert.Nil(t, env.Data)
	assert.Nil(t, env.Error)
}

func TestWriteJSONError_AllFields(t *testing.T) {
	var buf bytes.Buffer

	details := map[string]string{"kind": "tcp6"}
	err := WriteJSONError(&buf, ErrCodeEnumerationFailed, "fail to get sockets info", "Run as root", details)
	require.NoError(t, err)

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.False(t, env.Success)
	assert.Nil(t, env.Data)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeEnumerationFailed, env.Error.Code)
	assert.Equal(t, "fail to get sockets info", env.Error.Message)
	assert.Equal(t, "Run as root", env.Error.Suggestion)

	detailsMap, ok := env.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "tcp6", detailsMap["kind"])
}

func TestWriteJSONError_NoSuggestion(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSONError(&buf, ErrCodeUnknown, "Something went wrong", "", nil))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.False(t, env.Success)
	assert.Equal(t, ErrCodeUnknown, env.Error.Code)
	assert.Empty(t, env.Error.Suggestion)
	assert.Nil(t, env.Error.Details)
}

func TestWriteJSONFromError_NilError(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSONFromError(&buf, nil))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.False(t, env.Success)
	assert.Nil(t, env.Error)
}

func TestWriteJSONFromError_GenericError(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSONFromError(&buf, fmt.Errorf("something went wrong")))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeUnknown, env.Error.Code)
	assert.Equal(t, "something went wrong", env.Error.Message)
}

func TestWriteJSONFromError_StructuredError(t *testing.T) {
	var buf bytes.Buffer

	swErr := errors.New(errors.ErrConfig, "Config file not found", "Run 'sockwatch init' to create one")
	require.NoError(t, WriteJSONFromError(&buf, swErr))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeConfigNotFound, env.Error.Code)
	assert.Equal(t, "Config file not found", env.Error.Message)
	assert.Equal(t, "Run 'sockwatch init' to create one", env.Error.Suggestion)
}

func TestWriteJSONFromError_WrappedStructuredError(t *testing.T) {
	var buf bytes.Buffer

	inner := errors.NewEnumerationFailed(fmt.Errorf("permission denied"))
	require.NoError(t, WriteJSONFromError(&buf, fmt.Errorf("list: %w", inner)))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeEnumerationFailed, env.Error.Code)
	assert.Equal(t, "fail to get sockets info: permission denied", env.Error.Message)

	detailsMap, ok := env.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "permission denied", detailsMap["cause"])
}

func TestErrorToJSON_NilReturnsNil(t *testing.T) {
	assert.Nil(t, ErrorToJSON(nil))
}

func TestErrorToJSON_AllInternalErrorCodes(t *testing.T) {
	tests := []struct {
		name         string
		internalCode string
		message      string
		wantCode     string
	}{
		{
			name:         "config not found",
			internalCode: errors.ErrConfig,
			message:      "Config file not found",
			wantCode:     ErrCodeConfigNotFound,
		},
		{
			name:         "config couldn't find",
			internalCode: errors.ErrConfig,
			message:      "Couldn't find config file",
			wantCode:     ErrCodeConfigNotFound,
		},
		{
			name:         "config invalid",
			internalCode: errors.ErrConfig,
			message:      "Invalid interval: 10ms",
			wantCode:     ErrCodeConfigInvalid,
		},
		{
			name:         "enumeration",
			internalCode: errors.ErrEnumerate,
			message:      "fail to get sockets info: boom",
			wantCode:     ErrCodeEnumerationFailed,
		},
		{
			name:         "process lookup",
			internalCode: errors.ErrProcess,
			message:      "pid 7 vanished",
			wantCode:     ErrCodeProcessLookup,
		},
		{
			name:         "terminal",
			internalCode: errors.ErrUI,
			message:      "Dashboard stopped unexpectedly",
			wantCode:     ErrCodeTerminal,
		},
		{
			name:         "exec error",
			internalCode: errors.ErrExec,
			message:      "Command failed",
			wantCode:     ErrCodeCommandFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ErrorToJSON(errors.New(tt.internalCode, tt.message, "some suggestion"))

			require.NotNil(t, result)
			assert.Equal(t, tt.wantCode, result.Code)
			assert.Equal(t, tt.message, result.Message)
			assert.Nil(t, result.Details)
		})
	}
}

func TestMapErrorCode_UnknownCode(t *testing.T) {
	assert.Equal(t, ErrCodeUnknown, mapErrorCode("UNKNOWN_INTERNAL_CODE", "Some message"))
}

func TestJSONEnvelope_Structure(t *testing.T) {
	data, err := json.Marshal(JSONEnvelope{Success: true, Data: "test"})
	require.NoError(t, err)

	assert.Contains(t, string(data), `"success":true`)
	assert.Contains(t, string(data), `"data":"test"`)
	assert.NotContains(t, string(data), `"error"`) // omitempty
}

func TestJSONError_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(JSONError{Code: "TEST", Message: "Test"})
	require.NoError(t, err)

	assert.NotContains(t, string(data), `"suggestion"`)
	assert.NotContains(t, string(data), `"details"`)
}

func TestWriteJSONEnvelope_Formatting(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSONSuccess(&buf, map[string]string{"test": "value"}))

	output := buf.String()
	assert.Contains(t, output, "\n  ")
	assert.True(t, output[len(output)-1] == '\n')
}

func TestErrorCodes_AreUnique(t *testing.T) {
	codes := []string{
		ErrCodeConfigNotFound,
		ErrCodeConfigInvalid,
		ErrCodeEnumerationFailed,
		ErrCodeProcessLookup,
		ErrCodeTerminal,
		ErrCodeCommandFailed,
		ErrCodeUnknown,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "duplicate error code: %s", code)
		seen[code] = true
		assert.Regexp(t, `^[A-Z_]+$`, code)
	}
}
