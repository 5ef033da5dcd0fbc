/*
Copyright (c) 2018 Simon Schmidt

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package maglev

import "github.com/sirupsen/logrus"
import "github.com/noxiouz/maglevhash/maglev/dhash"

// Config holds the pluggable parts of a table.
type Config[T comparable] struct {
	// Hasher places nodes and keys. Changing it changes every placement.
	Hasher dhash.Hasher

	// Encoder turns identifiers and keys into the bytes fed to Hasher.
	Encoder Encoder[T]

	Logger logrus.FieldLogger
}

// DefaultConfig returns SipHash, DefaultEncoder and the standard logrus logger.
func DefaultConfig[T comparable]() Config[T] {
	return Config[T]{
		Hasher:  dhash.Default,
		Encoder: DefaultEncoder[T],
		Logger:  logrus.StandardLogger(),
	}
}

type Option[T comparable] func(*Config[T])

// WithConfig replaces the whole configuration. Nil fields keep their defaults.
func WithConfig[T comparable](c Config[T]) Option[T] {
	return func(dst *Config[T]) {
		if c.Hasher != nil {
			dst.Hasher = c.Hasher
		}
		if c.Encoder != nil {
			dst.Encoder = c.Encoder
		}
		if c.Logger != nil {
			dst.Logger = c.Logger
		}
	}
}

func WithHasher[T comparable](h dhash.Hasher) Option[T] {
	return func(c *Config[T]) {
		if h != nil {
			c.Hasher = h
		}
	}
}

func WithEncoder[T comparable](e Encoder[T]) Option[T] {
	return func(c *Config[T]) {
		if e != nil {
			c.Encoder = e
		}
	}
}

func WithLogger[T comparable](l logrus.FieldLogger) Option[T] {
	return func(c *Config[T]) {
		if l != nil {
			c.Logger = l
		}
	}
}
