// Package pngtext embeds and extracts textual metadata (tEXt chunks) in
// PNG files. The caption keys written here are read back by the history
// provider and must round-trip unchanged.
package pngtext

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"sort"
)

// Caption metadata keys
const (
	KeyTitle  = "Title"
	KeyArtist = "Artist"
	KeyPrompt = "Prompt"
)

var pngSignature = []byte{137, 80, 78, 71, 13, 10, 26, 10}

// Encode writes img as PNG to w with one tEXt chunk per meta entry,
// inserted directly after the IHDR chunk
func Encode(w io.Writer, img image.Image, meta map[string]string) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	raw := buf.Bytes()
	if len(raw) < 16 || !bytes.Equal(raw[:8], pngSignature) {
		return fmt.Errorf("png encoder produced an invalid stream")
	}

	ihdrLen := int(binary.BigEndian.Uint32(raw[8:12]))
	splitAt := 8 + 8 + ihdrLen + 4
	if splitAt > len(raw) {
		return fmt.Errorf("png stream shorter than its IHDR chunk")
	}

	if _, err := w.Write(raw[:splitAt]); err != nil {
		return err
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		data := make([]byte, 0, len(k)+1+len(meta[k]))
		data = append(data, k...)
		data = append(data, 0)
		data = append(data, meta[k]...)
		if err := writeChunk(w, "tEXt", data); err != nil {
			return err
		}
	}

	_, err := w.Write(raw[splitAt:])
	return err
}

func writeChunk(w io.Writer, chunkType string, data []byte) error {
	var header [8]byte
	binary.BigEndian.PutUint32(header[:4], uint32(len(data)))
	copy(header[4:], chunkType)
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	crc := crc32.NewIEEE()
	crc.Write([]byte(chunkType))
	crc.Write(data)
	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], crc.Sum32())
	_, err := w.Write(footer[:])
	return err
}

// Decode returns the tEXt metadata of a PNG stream without decoding pixel data
func Decode(r io.Reader) (map[string]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(raw) < 8 || !bytes.Equal(raw[:8], pngSignature) {
		return nil, fmt.Errorf("not a png stream")
	}

	meta := map[string]string{}
	pos := 8
	for pos+8 <= len(raw) {
		length := int(binary.BigEndian.Uint32(raw[pos : pos+4]))
		chunkType := string(raw[pos+4 : pos+8])
		dataStart := pos + 8
		if dataStart+length+4 > len(raw) {
			return nil, fmt.Errorf("truncated png chunk %q", chunkType)
		}
		if chunkType == "tEXt" {
			data := raw[dataStart : dataStart+length]
			if sep := bytes.IndexByte(data, 0); sep > 0 {
				meta[string(data[:sep])] = string(data[sep+1:])
			}
		}
		pos = dataStart + length + 4
		if chunkType == "IEND" {
			break
		}
	}
	return meta, nil
}
