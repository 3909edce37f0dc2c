package cli

import "context"

// Theme switches between the light and dark theme and reports the result.
func (a *App) Theme(ctx context.Context) error {
	t, err := a.themes.Toggle(ctx)
	if err != nil {
		return err
	}
	printlnFn("Theme:", string(t))
	return nil
}
