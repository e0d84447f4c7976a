// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package optional

// Option is a generic type that can hold a value of type T or be empty (None).
//
// It must be used as a value type, it is not thread-safe as a pointer.
type Option[T any] []T

func None[T any]() Option[T] {
	return nil
}

func Some[T any](v T) Option[T] {
	return Option[T]{v}
}

func FromPtr[T any](v *T) Option[T] {
	if v == nil {
		return None[T]()
	}
	return Some(*v)
}

func (o Option[T]) Has() bool {
	return o != nil
}

func (o Option[T]) Value() T {
	var v T
	if o.Has() {
		v = o[0]
	}
	return v
}

// ValueOrDefault returns the value of the option if it is set, otherwise the provided default value
func (o Option[T]) ValueOrDefault(v T) T {
	if o.Has() {
		return o[0]
	}
	return v
}
