package http

import (
	"encoding/json"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

const swaggerInstance = "restaurant"

var registerSpec sync.Once

// specDoc hands the OpenAPI document to swag, which serves it to the UI as
// doc.json.
type specDoc struct {
	doc string
}

func (s specDoc) ReadDoc() string {
	return s.doc
}

// swaggerUI serves Swagger UI for spec. swag keeps a process-wide registry, so
// the first registered document wins.
func swaggerUI(spec *openapi3.T) (echo.HandlerFunc, error) {
	raw, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}

	registerSpec.Do(func() {
		if swag.GetSwagger(swaggerInstance) == nil {
			swag.Register(swaggerInstance, specDoc{doc: string(raw)})
		}
	})

	return echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(swaggerInstance)), nil
}
