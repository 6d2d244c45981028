package vo

import "testing"

func TestDefaultLadder(t *testing.T) {
	ladder := DefaultLadder()
	if len(ladder) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(ladder))
	}

	expect := map[string]string{
		"360p":  "800k",
		"720p":  "2500k",
		"1080p": "4500k",
	}
	for _, v := range ladder {
		bitrate, ok := expect[v.Name]
		if !ok {
			t.Errorf("unexpected variant %q", v.Name)
			continue
		}
		if v.VideoBitrate != bitrate {
			t.Errorf("variant %s: bitrate = %s, want %s", v.Name, v.VideoBitrate, bitrate)
		}
		if v.AudioCodec != "aac" || v.AudioBitrate != "128k" || v.AudioRate != 48000 {
			t.Errorf("variant %s: audio params = %s/%s/%d, want aac/128k/48000", v.Name, v.AudioCodec, v.AudioBitrate, v.AudioRate)
		}
		if v.SegmentSeconds != 4 || v.PlaylistType != "vod" {
			t.Errorf("variant %s: segmenting = %d/%s, want 4/vod", v.Name, v.SegmentSeconds, v.PlaylistType)
		}
	}
}

func TestDefaultQualityAliases(t *testing.T) {
	aliases := DefaultQualityAliases()
	if got := aliases["480p"]; got != "360p" {
		t.Errorf("480p alias = %q, want 360p", got)
	}
	for _, label := range []string{"360p", "720p", "1080p"} {
		if got := aliases[label]; got != label {
			t.Errorf("%s alias = %q, want identity", label, got)
		}
	}
	if err := ValidateAliases(aliases, DefaultLadder()); err != nil {
		t.Errorf("default aliases should validate: %v", err)
	}
}

func TestValidateAliasesRejectsDanglingTarget(t *testing.T) {
	aliases := map[string]string{"4k": "2160p"}
	if err := ValidateAliases(aliases, DefaultLadder()); err == nil {
		t.Error("expected error for alias pointing to a variant no ladder entry produces")
	}
}
