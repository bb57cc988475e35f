package viewctrls

// Validate checks that controls is non-empty and that every control has a
// usable callback. It stops at the first offending key in set order.
func Validate(controls *ControlSet) error {
	const op = "viewctrls.Validate"
	if controls.Len() == 0 {
		return &Error{Op: op, Kind: KindEmpty, Err: ErrConfigEmpty}
	}
	var err error
	controls.Each(func(key string, c Control) bool {
		if cb, _ := c.ResolveCallback(); cb == nil {
			err = &Error{Op: op, Kind: KindMissingCallback, Key: key, Err: ErrMissingCallback}
			return false
		}
		return true
	})
	return err
}
