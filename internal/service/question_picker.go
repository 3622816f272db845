package service

import (
	"eduz_backend/internal/model"
	"math/rand"
)

// fallbackScanCeiling bounds the bucket scan when the current difficulty has
// run dry. Bucket 6 is reachable only while the picker is already sitting on
// it; the fallback never drifts there. Kept as-is on purpose, see the
// picker tests before changing it.
const fallbackScanCeiling = 5

// BucketQuestions groups a question pool by clamped difficulty rating.
func BucketQuestions(questions []model.Question) map[int][]model.Question {
	buckets := make(map[int][]model.Question)
	for _, q := range questions {
		d := model.ClampDifficulty(q.Difficulty)
		buckets[d] = append(buckets[d], q)
	}
	return buckets
}

// PickQuestions draws up to count questions, one at a time, starting at the
// given difficulty. Each draw is uniform within the current bucket; when the
// bucket empties the picker moves to the non-empty bucket numerically
// closest to the current difficulty (ties go to the easier one) and keeps
// drawing. The result may be shorter than count; an empty result is the
// caller's hard failure, a short one is not.
func PickQuestions(buckets map[int][]model.Question, count, start int, rng *rand.Rand) []model.Question {
	pool := make(map[int][]model.Question, len(buckets))
	for d, qs := range buckets {
		pool[d] = append([]model.Question(nil), qs...)
	}

	difficulty := model.ClampDifficulty(start)
	picked := make([]model.Question, 0, count)

	for len(picked) < count {
		bucket := pool[difficulty]
		if len(bucket) == 0 {
			next, ok := nearestStockedBucket(pool, difficulty)
			if !ok {
				break
			}
			difficulty = next
			continue
		}

		i := rng.Intn(len(bucket))
		picked = append(picked, bucket[i])
		pool[difficulty] = append(bucket[:i], bucket[i+1:]...)
	}

	return picked
}

func nearestStockedBucket(pool map[int][]model.Question, current int) (int, bool) {
	best := 0
	bestDist := -1
	for d := model.MinDifficulty; d <= fallbackScanCeiling; d++ {
		if len(pool[d]) == 0 {
			continue
		}
		dist := d - current
		if dist < 0 {
			dist = -dist
		}
		if bestDist == -1 || dist < bestDist {
			best = d
			bestDist = dist
		}
	}
	if bestDist == -1 {
		return 0, false
	}
	return best, true
}
