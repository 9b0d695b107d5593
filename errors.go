package main

import "errors"

// This file defines the error taxonomy for the fetch/parse pipeline. All of
// these are terminal for the operation that produced them: a parse error never
// yields a partial snapshot, and a fetch error is never retried.

var (
	// ErrMissingField: a required key is absent from a structurally-required block.
	ErrMissingField = errors.New("отсутствует обязательное поле")
	// ErrInvalidValue: a leaf value is present but cannot be coerced to its type.
	ErrInvalidValue = errors.New("некорректное значение")
	// ErrMalformedResponse: a required top-level block is absent or mis-shaped.
	ErrMalformedResponse = errors.New("ответ не содержит необходимых данных")
	// ErrUpstream: OpenWeatherMap answered with an error code in the payload.
	ErrUpstream = errors.New("ошибка OpenWeatherMap")
	// ErrTransport: network failure, timeout or a body that isn't JSON.
	ErrTransport = errors.New("ошибка соединения")
)

// errCacheMiss is returned by cache backends for absent or expired entries.
// The Redis backend maps redis.Nil onto it.
var errCacheMiss = errors.New("cache miss")
