package core

import "errors"

// ErrConfigurationMissing marks a component whose mandatory wiring (prefab
// list, player reference, entity template) was absent at construction. Such a
// component logs once and stays disabled; it never fails the frame loop.
var ErrConfigurationMissing = errors.New("configuration missing")
