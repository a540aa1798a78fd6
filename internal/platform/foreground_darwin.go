package platform

type foregroundProvider struct{}

func newForegroundProvider() ForegroundProvider {
	return &foregroundProvider{}
}

// ForegroundProgram is not implemented on darwin; the engine treats the
// empty result as "no tracked program in front".
func (provider *foregroundProvider) ForegroundProgram() (string, string, error) {
	return "", "", nil
}
