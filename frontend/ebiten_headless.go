//go:build headless

package frontend

import "errors"

// RunEbiten reports that the ebiten front end is not part of headless builds.
func RunEbiten(m Machine) error {
	m.Quit()
	return errors.New("ebiten front end not available in headless builds")
}
