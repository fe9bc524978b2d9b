package weather

import "errors"

var (
	errNoSampler   = errors.New("no height sampler configured")
	errShortSample = errors.New("sampler returned fewer heights than segments")
	errBadHeight   = errors.New("sampler returned a non-finite height")
)
