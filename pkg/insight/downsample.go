package insight

import (
	"github.com/samber/lo"

	"github.com/mediar-ai/insights/types"
)

const (
	// probabilityFloor drops low-confidence samples before bucketing.
	probabilityFloor = 0.3
	// bucketSize is the number of consecutive eligible samples averaged into
	// one bucket. This bounds the prompt regardless of sampling rate.
	bucketSize = 300
)

// Downsample reduces the attention stream to at most ceil(N/bucketSize)
// averaged buckets, walking the samples in their given order (newest first
// as read from the store). Each bucket takes the timestamp of its first
// sample.
func Downsample(samples []types.AttentionSample) []types.AttentionBucket {
	eligible := lo.Filter(samples, func(sample types.AttentionSample, _ int) bool {
		return sample.Probability > probabilityFloor
	})
	if len(eligible) == 0 {
		return nil
	}

	chunks := lo.Chunk(eligible, bucketSize)
	buckets := make([]types.AttentionBucket, 0, len(chunks))
	for _, chunk := range chunks {
		sum := 0.0
		for _, sample := range chunk {
			sum += sample.Probability
		}
		buckets = append(buckets, types.AttentionBucket{
			CreatedAt:   chunk[0].CreatedAt,
			Probability: sum / float64(len(chunk)),
		})
	}
	return buckets
}
