package service

import (
	"go.opentelemetry.io/otel"
)

// tracer uses the global provider, a no-op unless main installs an SDK
var tracer = otel.Tracer("fashionfusion-storefront/service")
