// Package swagger is a dynamic client for Swagger-described REST services.
//
// Given a resource-listing document, fetched over HTTP or supplied
// in-memory, it builds callable operations at runtime: a Client holds one
// Resource per listed API group, a Resource indexes Operations by nickname,
// and an Operation binds caller arguments onto its declared parameters
// (path, query, or body) before dispatching over HTTP or a websocket.
//
//	client := swagger.NewClient()
//	defer client.Close()
//
//	if err := client.Load(ctx, "http://localhost:8088/ari/api-docs/resources.json"); err != nil {
//	    log.Fatal(err)
//	}
//
//	channels, err := client.Resource("channels")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	op, err := channels.Operation("originate")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := op.Invoke(ctx, map[string]any{"endpoint": "SIP/alice"})
//
// Responses pass through raw: no decoding, schema validation, or retry
// policy is applied at this layer. Errors are structured (*Error) and carry
// an ErrorCode distinguishing binding, lookup, usage, and network failures.
package swagger
