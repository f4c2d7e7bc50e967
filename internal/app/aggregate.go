package app

import "github.com/etczermerivil/Rgb-bnb/internal/domain"

// Derived read-side fields. avgRating is never stored; it is recomputed
// from current review rows on every read. previewImage is the first
// preview-flagged image in id order (lowest id wins when several are
// flagged), nil when none.

func averageRating(rs []domain.Review) *float64 {
	if len(rs) == 0 {
		return nil
	}
	var sum int
	for _, r := range rs {
		sum += r.Stars
	}
	avg := float64(sum) / float64(len(rs))
	return &avg
}

func previewURL(imgs []domain.SpotImage) *string {
	for _, img := range imgs {
		if img.Preview {
			u := img.URL
			return &u
		}
	}
	return nil
}

func groupReviews(rs []domain.Review) map[int64][]domain.Review {
	out := make(map[int64][]domain.Review, len(rs))
	for _, r := range rs {
		out[r.SpotID] = append(out[r.SpotID], r)
	}
	return out
}

func groupImages(imgs []domain.SpotImage) map[int64][]domain.SpotImage {
	out := make(map[int64][]domain.SpotImage, len(imgs))
	for _, img := range imgs {
		out[img.SpotID] = append(out[img.SpotID], img)
	}
	return out
}

func spotIDs(spots []domain.Spot) []int64 {
	ids := make([]int64, len(spots))
	for i, s := range spots {
		ids[i] = s.ID
	}
	return ids
}
