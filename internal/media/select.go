package media

import (
	"sort"
	"strconv"
	"strings"
)

// Selection is the result of picking over a candidate list. Primary is
// "" when nothing playable was found.
type Selection struct {
	Primary string
	All     []string
	Videos  []string
	Images  []string

	HasAudio bool
}

type CarouselShape string

const (
	ShapeEmpty         CarouselShape = "empty"
	ShapeSingleVideo   CarouselShape = "single_video"
	ShapeVideoCarousel CarouselShape = "video_carousel"
	ShapeImageSet      CarouselShape = "image_set"
	ShapeMixedCarousel CarouselShape = "mixed_carousel"
)

// Select picks the best playable source and buckets every candidate.
//
// Preferred video: type==video && ext==mp4, highest leading quality
// integer first (stable, so upstream order breaks ties). Then any video,
// then the first candidate of any type. Candidates with an empty URL are
// discarded up front.
func Select(candidates []Candidate) Selection {
	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if strings.TrimSpace(c.URL) == "" {
			continue
		}
		kept = append(kept, c)
	}

	var sel Selection
	if len(kept) == 0 {
		sel.All = []string{}
		sel.Videos = []string{}
		sel.Images = []string{}
		return sel
	}

	for _, c := range kept {
		switch c.EffectiveType() {
		case TypeVideo:
			sel.Videos = append(sel.Videos, c.URL)
		case TypeImage:
			sel.Images = append(sel.Images, c.URL)
		case TypeAudio:
			sel.HasAudio = true
		}
	}
	if sel.Videos == nil {
		sel.Videos = []string{}
	}
	if sel.Images == nil {
		sel.Images = []string{}
	}

	sel.Primary = preferredVideo(kept)

	if len(sel.Videos) > 0 {
		sel.All = append([]string{}, sel.Videos...)
	} else {
		sel.All = make([]string, 0, len(kept))
		for _, c := range kept {
			sel.All = append(sel.All, c.URL)
		}
	}
	return sel
}

// SelectFromSources classifies a flat URL list (simple aggregator
// responses have no structured medias) by extension heuristics.
func SelectFromSources(sources []string) Selection {
	cands := make([]Candidate, 0, len(sources))
	for _, s := range sources {
		cands = append(cands, Candidate{URL: s})
	}
	return Select(cands)
}

// Shape classifies the carousel layout from the bucketed lists alone.
func Shape(videos, images []string) CarouselShape {
	switch {
	case len(videos) == 0 && len(images) == 0:
		return ShapeEmpty
	case len(videos) >= 1 && len(images) >= 1:
		return ShapeMixedCarousel
	case len(videos) == 1:
		return ShapeSingleVideo
	case len(videos) >= 2:
		return ShapeVideoCarousel
	default:
		return ShapeImageSet
	}
}

func preferredVideo(cands []Candidate) string {
	mp4s := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.EffectiveType() == TypeVideo && c.EffectiveExtension() == "mp4" {
			mp4s = append(mp4s, c)
		}
	}
	if len(mp4s) > 0 {
		sort.SliceStable(mp4s, func(i, j int) bool {
			return qualityRank(mp4s[i].Quality) > qualityRank(mp4s[j].Quality)
		})
		return mp4s[0].URL
	}
	for _, c := range cands {
		if c.EffectiveType() == TypeVideo {
			return c.URL
		}
	}
	return cands[0].URL
}

// qualityRank parses the leading integer of a free-text quality label
// like "1080-1350p". Missing or unparseable labels rank lowest.
func qualityRank(q string) int {
	start := -1
	for i := 0; i < len(q); i++ {
		if q[i] >= '0' && q[i] <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(q[start:i])
			return n
		}
	}
	if start < 0 {
		return 0
	}
	n, _ := strconv.Atoi(q[start:])
	return n
}
