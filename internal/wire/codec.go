package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/fluxhq/flux/internal/domain"
)

// modeTag is Mode's on-the-wire discriminant. modeTagPrompting is the
// legacy spelling accepted on decode only; Flux never writes it.
type modeTag uint8

const (
	modeTagAiAssisted modeTag = iota
	modeTagReview
	modeTagArchitecture
	modeTagCustom
	modeTagPrompting
)

func encodeMode(buf *bytes.Buffer, mode domain.Mode) {
	if label, ok := mode.IsCustom(); ok {
		buf.WriteByte(byte(modeTagCustom))
		writeString(buf, label)
		return
	}
	switch mode.String() {
	case "review":
		buf.WriteByte(byte(modeTagReview))
	case "architecture":
		buf.WriteByte(byte(modeTagArchitecture))
	default:
		buf.WriteByte(byte(modeTagAiAssisted))
	}
}

func decodeMode(r *bytes.Reader) (domain.Mode, error) {
	tagByte, err := r.ReadByte()
	if err != nil {
		return domain.Mode{}, fmt.Errorf("wire: read mode tag: %w", err)
	}
	switch modeTag(tagByte) {
	case modeTagAiAssisted, modeTagPrompting:
		return domain.ModeAiAssisted, nil
	case modeTagReview:
		return domain.ModeReview, nil
	case modeTagArchitecture:
		return domain.ModeArchitecture, nil
	case modeTagCustom:
		label, err := readString(r)
		if err != nil {
			return domain.Mode{}, fmt.Errorf("wire: read custom mode label: %w", err)
		}
		return domain.CustomMode(label), nil
	default:
		return domain.Mode{}, fmt.Errorf("wire: unknown mode tag %d", tagByte)
	}
}

func writeString(buf *bytes.Buffer, s string) {
	var lenBytes [2]byte
	binary.LittleEndian.PutUint16(lenBytes[:], uint16(len(s)))
	buf.Write(lenBytes[:])
	buf.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	var lenBytes [2]byte
	if _, err := r.Read(lenBytes[:]); err != nil {
		return "", err
	}
	n := binary.LittleEndian.Uint16(lenBytes[:])
	buf := make([]byte, n)
	if n > 0 {
		if _, err := r.Read(buf); err != nil {
			return "", err
		}
	}
	return string(buf), nil
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func readUint64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := r.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func encodeRequest(req Request) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(req.Kind))

	switch req.Kind {
	case RequestStartSession:
		if req.HasDuration {
			buf.WriteByte(1)
			writeUint64(&buf, req.DurationMinutes)
		} else {
			buf.WriteByte(0)
		}
		if req.HasMode {
			buf.WriteByte(1)
			encodeMode(&buf, req.Mode)
		} else {
			buf.WriteByte(0)
		}
	}
	return buf.Bytes()
}

func decodeRequest(payload []byte) (Request, error) {
	r := bytes.NewReader(payload)
	kindByte, err := r.ReadByte()
	if err != nil {
		return Request{}, fmt.Errorf("wire: read request kind: %w", err)
	}
	req := Request{Kind: RequestKind(kindByte)}

	switch req.Kind {
	case RequestPing, RequestGetStatus, RequestStopSession, RequestPauseSession, RequestResumeSession, RequestShutdown:
		// no payload
	case RequestStartSession:
		hasDuration, err := r.ReadByte()
		if err != nil {
			return Request{}, fmt.Errorf("wire: read has-duration flag: %w", err)
		}
		if hasDuration == 1 {
			req.HasDuration = true
			req.DurationMinutes, err = readUint64(r)
			if err != nil {
				return Request{}, fmt.Errorf("wire: read duration: %w", err)
			}
		}
		hasMode, err := r.ReadByte()
		if err != nil {
			return Request{}, fmt.Errorf("wire: read has-mode flag: %w", err)
		}
		if hasMode == 1 {
			req.HasMode = true
			req.Mode, err = decodeMode(r)
			if err != nil {
				return Request{}, err
			}
		}
	default:
		return Request{}, fmt.Errorf("wire: unknown request kind %d", kindByte)
	}
	return req, nil
}

func encodeResponse(resp Response) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(resp.Kind))

	switch resp.Kind {
	case ResponseSessionStatus:
		writeBool(&buf, resp.Active)
		writeUint64(&buf, resp.RemainingSeconds)
		if resp.HasMode {
			buf.WriteByte(1)
			encodeMode(&buf, resp.Mode)
		} else {
			buf.WriteByte(0)
		}
		writeBool(&buf, resp.Paused)
	case ResponseError:
		writeString(&buf, resp.Message)
	}
	return buf.Bytes()
}

func decodeResponse(payload []byte) (Response, error) {
	r := bytes.NewReader(payload)
	kindByte, err := r.ReadByte()
	if err != nil {
		return Response{}, fmt.Errorf("wire: read response kind: %w", err)
	}
	resp := Response{Kind: ResponseKind(kindByte)}

	switch resp.Kind {
	case ResponsePong, ResponseOk:
		// no payload
	case ResponseSessionStatus:
		resp.Active, err = readBool(r)
		if err != nil {
			return Response{}, fmt.Errorf("wire: read active: %w", err)
		}
		resp.RemainingSeconds, err = readUint64(r)
		if err != nil {
			return Response{}, fmt.Errorf("wire: read remaining seconds: %w", err)
		}
		hasMode, err := r.ReadByte()
		if err != nil {
			return Response{}, fmt.Errorf("wire: read has-mode flag: %w", err)
		}
		if hasMode == 1 {
			resp.HasMode = true
			resp.Mode, err = decodeMode(r)
			if err != nil {
				return Response{}, err
			}
		}
		resp.Paused, err = readBool(r)
		if err != nil {
			return Response{}, fmt.Errorf("wire: read paused: %w", err)
		}
	case ResponseError:
		resp.Message, err = readString(r)
		if err != nil {
			return Response{}, fmt.Errorf("wire: read error message: %w", err)
		}
	default:
		return Response{}, fmt.Errorf("wire: unknown response kind %d", kindByte)
	}
	return resp, nil
}

func writeBool(buf *bytes.Buffer, b bool) {
	if b {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
}

func readBool(r *bytes.Reader) (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}
