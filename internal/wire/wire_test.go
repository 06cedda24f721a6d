package wire

import (
	"bytes"
	"io"
	"testing"

	"github.com/fluxhq/flux/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestRequestRoundTrip_Ping(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRequest(&buf, Request{Kind: RequestPing}))

	got, err := ReadRequest(&buf)
	require.NoError(t, err)
	require.Equal(t, RequestPing, got.Kind)
}

func TestRequestRoundTrip_StartSessionWithDurationAndMode(t *testing.T) {
	req := Request{
		Kind:            RequestStartSession,
		HasDuration:     true,
		DurationMinutes: 50,
		HasMode:         true,
		Mode:            domain.ModeReview,
	}
	var buf bytes.Buffer
	require.NoError(t, WriteRequest(&buf, req))

	got, err := ReadRequest(&buf)
	require.NoError(t, err)
	require.Equal(t, req.Kind, got.Kind)
	require.True(t, got.HasDuration)
	require.Equal(t, uint64(50), got.DurationMinutes)
	require.True(t, got.HasMode)
	require.True(t, got.Mode.Equal(domain.ModeReview))
}

func TestRequestRoundTrip_StartSessionWithNoFields(t *testing.T) {
	req := Request{Kind: RequestStartSession}
	var buf bytes.Buffer
	require.NoError(t, WriteRequest(&buf, req))

	got, err := ReadRequest(&buf)
	require.NoError(t, err)
	require.False(t, got.HasDuration)
	require.False(t, got.HasMode)
}

func TestRequestRoundTrip_CustomMode(t *testing.T) {
	req := Request{Kind: RequestStartSession, HasMode: true, Mode: domain.CustomMode("deep-work")}
	var buf bytes.Buffer
	require.NoError(t, WriteRequest(&buf, req))

	got, err := ReadRequest(&buf)
	require.NoError(t, err)
	label, ok := got.Mode.IsCustom()
	require.True(t, ok)
	require.Equal(t, "deep-work", label)
}

func TestResponseRoundTrip_SessionStatus(t *testing.T) {
	resp := Response{
		Kind:             ResponseSessionStatus,
		Active:           true,
		RemainingSeconds: 1234,
		HasMode:          true,
		Mode:             domain.ModeArchitecture,
		Paused:           true,
	}
	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, resp))

	got, err := ReadResponse(&buf)
	require.NoError(t, err)
	require.Equal(t, resp.Kind, got.Kind)
	require.Equal(t, resp.Active, got.Active)
	require.Equal(t, resp.RemainingSeconds, got.RemainingSeconds)
	require.True(t, got.Mode.Equal(resp.Mode))
	require.Equal(t, resp.Paused, got.Paused)
}

func TestResponseRoundTrip_Error(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, Err("no active session")))

	got, err := ReadResponse(&buf)
	require.NoError(t, err)
	require.Equal(t, ResponseError, got.Kind)
	require.Equal(t, "no active session", got.Message)
}

func TestResponseRoundTrip_OkAndPong(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, Ok()))
	got, err := ReadResponse(&buf)
	require.NoError(t, err)
	require.Equal(t, ResponseOk, got.Kind)

	buf.Reset()
	require.NoError(t, WriteResponse(&buf, Pong()))
	got, err = ReadResponse(&buf)
	require.NoError(t, err)
	require.Equal(t, ResponsePong, got.Kind)
}

func TestDecodeMode_LegacyPromptingTagDecodesAsAiAssisted(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(byte(modeTagPrompting))

	mode, err := decodeMode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.True(t, mode.Equal(domain.ModeAiAssisted))
}

func TestReadFrame_RejectsOversizedLength(t *testing.T) {
	var header [4]byte
	header[3] = 0xFF // huge little-endian length
	r := bytes.NewReader(header[:])

	_, err := readFrame(r)
	require.Error(t, err)
}

func TestReadRequest_TruncatedFrameReturnsError(t *testing.T) {
	_, err := ReadRequest(io.LimitReader(bytes.NewReader([]byte{5, 0, 0, 0}), 4))
	require.Error(t, err)
}
