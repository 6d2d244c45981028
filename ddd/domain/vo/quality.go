package vo

import "fmt"

// QualityVariant 质量档位值对象：一条固定阶梯里的一档编码参数。
type QualityVariant struct {
	Name           string // directory name under hls/<id>/, e.g. "720p"
	Height         int    // target vertical resolution; width follows the source aspect ratio
	VideoBitrate   string // e.g. "2500k"
	AudioCodec     string
	AudioBitrate   string
	AudioRate      int // sample rate in Hz
	SegmentSeconds int
	PlaylistType   string
}

// DefaultLadder 返回固定转码阶梯，按从低到高顺序执行。
func DefaultLadder() []QualityVariant {
	return []QualityVariant{
		{Name: "360p", Height: 360, VideoBitrate: "800k", AudioCodec: "aac", AudioBitrate: "128k", AudioRate: 48000, SegmentSeconds: 4, PlaylistType: "vod"},
		{Name: "720p", Height: 720, VideoBitrate: "2500k", AudioCodec: "aac", AudioBitrate: "128k", AudioRate: 48000, SegmentSeconds: 4, PlaylistType: "vod"},
		{Name: "1080p", Height: 1080, VideoBitrate: "4500k", AudioCodec: "aac", AudioBitrate: "128k", AudioRate: 48000, SegmentSeconds: 4, PlaylistType: "vod"},
	}
}

// DefaultQualityAliases 返回客户端清晰度标签到实际目录名的映射。
// 480p 复用 360p 的产物，不单独转码。
func DefaultQualityAliases() map[string]string {
	return map[string]string{
		"480p":  "360p",
		"360p":  "360p",
		"720p":  "720p",
		"1080p": "1080p",
	}
}

// ValidateAliases 校验每个别名目标都对应阶梯中真实存在的档位。
func ValidateAliases(aliases map[string]string, ladder []QualityVariant) error {
	names := make(map[string]struct{}, len(ladder))
	for _, v := range ladder {
		names[v.Name] = struct{}{}
	}
	for label, target := range aliases {
		if _, ok := names[target]; !ok {
			return fmt.Errorf("alias %q maps to %q which no ladder variant produces", label, target)
		}
	}
	return nil
}
