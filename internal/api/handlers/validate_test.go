package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dataURLOfDecodedSize builds a data URL whose estimated decoded size is
// exactly n bytes.
func dataURLOfDecodedSize(n int) string {
	prefix := "data:image/png;base64,"
	total := n * 4 / 3
	if total < len(prefix) {
		total = len(prefix)
	}
	return prefix + strings.Repeat("A", total-len(prefix))
}

func TestValidateImage(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		verr := validateImage("")
		require.NotNil(t, verr)
		assert.Equal(t, "Invalid Image", verr.Title)
	})

	t.Run("not a data url", func(t *testing.T) {
		verr := validateImage("iVBORw0KGgo=")
		require.NotNil(t, verr)
		assert.Contains(t, verr.Message, "data URL")
	})

	t.Run("at the 10MB boundary", func(t *testing.T) {
		assert.Nil(t, validateImage(dataURLOfDecodedSize(10*1024*1024)))
	})

	t.Run("over the 10MB boundary", func(t *testing.T) {
		verr := validateImage(dataURLOfDecodedSize(10*1024*1024 + 4))
		require.NotNil(t, verr)
		assert.Contains(t, verr.Message, "10MB")
	})
}

func TestValidateFrames(t *testing.T) {
	t.Run("empty batch", func(t *testing.T) {
		verr := validateFrames(nil)
		require.NotNil(t, verr)
		assert.Equal(t, "Missing Frames", verr.Title)
		assert.Equal(t, "No video frames provided", verr.Message)
	})

	t.Run("valid frames", func(t *testing.T) {
		frames := []string{
			"data:image/jpeg;base64,AAAA",
			"data:image/png;base64,BBBB",
		}
		assert.Nil(t, validateFrames(frames))
	})

	t.Run("bad frame reports its index", func(t *testing.T) {
		frames := []string{
			"data:image/jpeg;base64,AAAA",
			"not-a-data-url",
		}
		verr := validateFrames(frames)
		require.NotNil(t, verr)
		assert.Equal(t, "Invalid Frame Format", verr.Title)
		assert.Contains(t, verr.Message, "Frame 2")
	})

	t.Run("oversized frame", func(t *testing.T) {
		frames := []string{dataURLOfDecodedSize(5*1024*1024 + 4)}
		verr := validateFrames(frames)
		require.NotNil(t, verr)
		assert.Equal(t, "Frame Too Large", verr.Title)
		assert.Contains(t, verr.Message, "5MB")
	})
}

func TestValidateAudio(t *testing.T) {
	t.Run("mp3 by extension", func(t *testing.T) {
		assert.Nil(t, validateAudio("call.mp3", "", 1024))
	})

	t.Run("wav by mime type only", func(t *testing.T) {
		assert.Nil(t, validateAudio("recording", "audio/x-wav", 1024))
	})

	t.Run("case insensitive extension", func(t *testing.T) {
		assert.Nil(t, validateAudio("CALL.MP3", "", 1024))
	})

	t.Run("rejects other types", func(t *testing.T) {
		verr := validateAudio("video.mp4", "video/mp4", 1024)
		require.NotNil(t, verr)
		assert.Equal(t, "Invalid File Type", verr.Title)
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		verr := validateAudio("call.mp3", "audio/mpeg", 25*1024*1024+1)
		require.NotNil(t, verr)
		assert.Equal(t, "File Too Large", verr.Title)
	})

	t.Run("accepts file at the 25MB boundary", func(t *testing.T) {
		assert.Nil(t, validateAudio("call.mp3", "audio/mpeg", 25*1024*1024))
	})
}

func TestValidatePhone(t *testing.T) {
	t.Run("strips separators", func(t *testing.T) {
		cleaned, verr := validatePhone("(090) 123-4567")
		require.Nil(t, verr)
		assert.Equal(t, "0901234567", cleaned)
	})

	t.Run("too short", func(t *testing.T) {
		_, verr := validatePhone("1234567")
		require.NotNil(t, verr)
		assert.Equal(t, "Invalid Format", verr.Title)
	})

	t.Run("minimum length passes", func(t *testing.T) {
		_, verr := validatePhone("12345678")
		assert.Nil(t, verr)
	})

	t.Run("maximum length passes", func(t *testing.T) {
		_, verr := validatePhone(strings.Repeat("9", 15))
		assert.Nil(t, verr)
	})

	t.Run("too long", func(t *testing.T) {
		_, verr := validatePhone(strings.Repeat("9", 16))
		require.NotNil(t, verr)
		assert.Equal(t, "Invalid Format", verr.Title)
	})

	t.Run("blank", func(t *testing.T) {
		_, verr := validatePhone("   ")
		require.NotNil(t, verr)
		assert.Equal(t, "Missing Phone Number", verr.Title)
	})
}

func TestValidateCoordinates(t *testing.T) {
	t.Run("boundaries pass", func(t *testing.T) {
		assert.Nil(t, validateCoordinates(90, 180))
		assert.Nil(t, validateCoordinates(-90, -180))
		assert.Nil(t, validateCoordinates(0, 0))
	})

	t.Run("latitude out of range", func(t *testing.T) {
		verr := validateCoordinates(90.0001, 0)
		require.NotNil(t, verr)
		assert.Equal(t, "Invalid Latitude", verr.Title)
	})

	t.Run("longitude out of range", func(t *testing.T) {
		verr := validateCoordinates(0, -180.0001)
		require.NotNil(t, verr)
		assert.Equal(t, "Invalid Longitude", verr.Title)
	})
}
