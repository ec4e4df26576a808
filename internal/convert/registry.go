// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package convert

import (
	"github.com/dacolabs/schemamap/internal/translate"
	"github.com/dacolabs/schemamap/internal/translate/gostruct"
	"github.com/dacolabs/schemamap/internal/translate/javalombok"
	"github.com/dacolabs/schemamap/internal/translate/jsonschema"
	"github.com/dacolabs/schemamap/internal/translate/prisma"
	"github.com/dacolabs/schemamap/internal/translate/pydantic"
	"github.com/dacolabs/schemamap/internal/translate/typescript"
	"github.com/dacolabs/schemamap/internal/translate/zod"
)

// HandlerFor returns the handler for f. Handlers are stateless, so a fresh
// value per call is as good as a shared one.
func HandlerFor(f translate.Format) (translate.Handler, error) {
	switch f {
	case translate.TypeScript:
		return &typescript.Handler{}, nil
	case translate.Zod:
		return &zod.Handler{}, nil
	case translate.GoStruct:
		return &gostruct.Handler{}, nil
	case translate.Pydantic:
		return &pydantic.Handler{}, nil
	case translate.JavaLombok:
		return &javalombok.Handler{}, nil
	case translate.Prisma:
		return &prisma.Handler{}, nil
	case translate.JSONSchema:
		return &jsonschema.Handler{}, nil
	}
	return nil, translate.Failf(translate.ErrUnsupportedFormat, "Unsupported format: %s", f)
}
