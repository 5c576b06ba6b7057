package decoder

import (
	"fmt"

	"github.com/ada-tools/ccbor/cborutil"
	"github.com/ada-tools/ccbor/errs"
	"github.com/ada-tools/ccbor/internal/primitive"
	"github.com/ada-tools/ccbor/sourcemap"
	"github.com/ada-tools/ccbor/value"
)

// decodeByteOrTextString handles major types 2 (isText=false) and 3
// (isText=true): definite-length payloads and the indefinite chunk state
// machine {Start, Chunk, Break}.
func (st *decodeState) decodeByteOrTextString(headerPos, argPos int, ai uint8, isText bool, path, parent string, hasParent bool) (value.Value, int, error) {
	length, indefinite, pos, err := st.readArgument(headerPos, argPos, ai)
	if err != nil {
		return nil, pos, err
	}

	majorType := value.MajorBytes
	typeLabel := "bytes"
	if isText {
		majorType = value.MajorText
		typeLabel = "text"
	}

	if indefinite {
		if !st.cfg.allowIndefinite {
			return nil, pos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: indefinite-length string", errs.ErrNonCanonical))
		}

		return st.decodeIndefiniteString(headerPos, pos, isText, majorType, typeLabel, path, parent, hasParent)
	}

	if st.cfg.maxStringLength > 0 && length > uint64(st.cfg.maxStringLength) {
		return nil, pos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: string length %d exceeds max_string_length %d", errs.ErrSizeExceeded, length, st.cfg.maxStringLength))
	}

	if err := st.reserveOutput(headerPos, int(length)); err != nil {
		return nil, pos, err
	}

	if st.cfg.validateCanonical && !primitive.IsCanonicalInteger(length, ai) {
		return nil, pos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: string length not minimally encoded", errs.ErrNonCanonical))
	}

	end := pos + int(length)
	if end > len(st.buf) {
		return nil, pos, errs.NewDecodeError(pos, errs.ErrTruncated)
	}

	payload := st.buf[pos:end]

	idx := st.beginEntry(path, parent, hasParent, headerPos, majorType, fmt.Sprintf("%s(%d)", typeLabel, length))
	var contentIdx int
	if length > 0 {
		contentIdx = st.splitHeader(idx, pos, end, sourcemap.ContentPath(path))
	} else {
		contentIdx = -1
		st.endEntry(idx, end)
	}

	if isText {
		if st.cfg.validateUTF8Strict {
			if err := primitive.ValidateUTF8Strict(payload); err != nil {
				return nil, end, errs.NewDecodeError(pos, err)
			}
		}

		v := value.Text{V: string(payload)}
		st.retagEntry(contentIdx, cborutil.DiagnosticLabel(v))

		return v, end, nil
	}

	cp := make([]byte, len(payload))
	copy(cp, payload)

	v := value.Bytes{V: cp}
	st.retagEntry(contentIdx, cborutil.DiagnosticLabel(v))

	return v, end, nil
}

// decodeIndefiniteString implements the chunk loop: Start -> Chunk on any
// definite chunk of the matching major type, Chunk -> Chunk on further
// chunks, Chunk -> Break on 0xFF. Any chunk of the wrong major type or
// itself indefinite is NestedIndefinite.
func (st *decodeState) decodeIndefiniteString(headerPos, pos int, isText bool, majorType value.MajorType, typeLabel, path, parent string, hasParent bool) (value.Value, int, error) {
	var (
		byteChunks = [][]byte{}
		textChunks = []string{}
		totalBytes []byte
	)

	for {
		if pos >= len(st.buf) {
			return nil, pos, errs.NewDecodeError(pos, errs.ErrTruncated)
		}

		if st.buf[pos] == 0xFF {
			pos++
			break
		}

		chunkMT, chunkAI := primitive.ExtractHeader(st.buf[pos])
		wantMT := uint8(2)
		if isText {
			wantMT = 3
		}

		if chunkMT != wantMT {
			return nil, pos, errs.NewDecodeError(pos, errs.ErrNestedIndefinite)
		}

		if chunkAI == 31 {
			return nil, pos, errs.NewDecodeError(pos, fmt.Errorf("%w: chunk is itself indefinite", errs.ErrNestedIndefinite))
		}

		chunkLen, _, chunkArgPos, err := st.readArgument(pos, pos+1, chunkAI)
		if err != nil {
			return nil, pos, err
		}

		if err := st.reserveOutput(pos, int(chunkLen)); err != nil {
			return nil, pos, err
		}

		chunkEnd := chunkArgPos + int(chunkLen)
		if chunkEnd > len(st.buf) {
			return nil, pos, errs.NewDecodeError(chunkArgPos, errs.ErrTruncated)
		}

		chunk := st.buf[chunkArgPos:chunkEnd]

		if isText {
			if st.cfg.validateUTF8Strict {
				if err := primitive.ValidateUTF8Strict(chunk); err != nil {
					return nil, chunkEnd, errs.NewDecodeError(chunkArgPos, err)
				}
			}

			textChunks = append(textChunks, string(chunk))
		} else {
			cp := make([]byte, len(chunk))
			copy(cp, chunk)
			byteChunks = append(byteChunks, cp)
		}

		totalBytes = append(totalBytes, chunk...)
		pos = chunkEnd
	}

	idx := st.beginEntry(path, parent, hasParent, headerPos, majorType, typeLabel+"(indefinite)")
	st.endEntry(idx, pos)

	if isText {
		v := value.Text{V: string(totalBytes), Indefinite: true, Chunks: textChunks}
		st.retagEntry(idx, cborutil.DiagnosticLabel(v))

		return v, pos, nil
	}

	cp := make([]byte, len(totalBytes))
	copy(cp, totalBytes)

	v := value.Bytes{V: cp, Indefinite: true, Chunks: byteChunks}
	st.retagEntry(idx, cborutil.DiagnosticLabel(v))

	return v, pos, nil
}
