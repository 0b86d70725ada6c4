package bench

import "github.com/dhealth/diskscope/model"

// computeStats aggregates avg/min/max over the gathered samples. An
// empty sample set yields all zeroes.
func computeStats(samples []model.BenchmarkSample) model.BenchmarkResult {
	res := model.BenchmarkResult{Samples: samples}
	if len(samples) == 0 {
		return res
	}

	res.MinReadMBps = samples[0].ReadMBps
	res.MaxReadMBps = samples[0].ReadMBps
	res.MinAccessMs = samples[0].AccessMs
	res.MaxAccessMs = samples[0].AccessMs

	var speedSum, accessSum float64
	for _, s := range samples {
		speedSum += s.ReadMBps
		accessSum += s.AccessMs
		if s.ReadMBps < res.MinReadMBps {
			res.MinReadMBps = s.ReadMBps
		}
		if s.ReadMBps > res.MaxReadMBps {
			res.MaxReadMBps = s.ReadMBps
		}
		if s.AccessMs < res.MinAccessMs {
			res.MinAccessMs = s.AccessMs
		}
		if s.AccessMs > res.MaxAccessMs {
			res.MaxAccessMs = s.AccessMs
		}
	}
	n := float64(len(samples))
	res.AvgReadMBps = speedSum / n
	res.AvgAccessMs = accessSum / n
	return res
}
