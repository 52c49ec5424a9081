// Package errors provides a comprehensive error handling solution for the miniature battle service.
//
// This package is inspired by the goaterr pattern and provides:
//   - Structured errors with codes, messages, and metadata
//   - Seamless gRPC integration with bidirectional conversion
//   - User-friendly error messages
//   - Error context preservation through wrapping
//   - Validation error helpers
//   - Type-safe error checking
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("battle not found")
//	err := errors.InvalidArgumentf("unknown action: %s", name)
//
// Adding metadata:
//
//	err := errors.NotFound("battle not found").
//	    WithMeta("battle_id", battleID).
//	    WithMeta("owner_id", ownerID)
//
// Wrapping errors:
//
//	if err := repo.Get(id); err != nil {
//	    return errors.Wrap(err, "failed to get battle")
//	}
//
// Changing error semantics:
//
//	if err := db.Query(); err != nil {
//	    if isNotFound(err) {
//	        return errors.WrapWithCode(err, errors.CodeNotFound, "record not found")
//	    }
//	    return errors.Wrap(err, "database error")
//	}
//
// # Error Checking
//
// Type checking:
//
//	if errors.IsNotFound(err) {
//	    // Handle not found case
//	}
//
// Extracting information:
//
//	code := errors.GetCode(err)
//	message := errors.GetMessage(err)
//	meta := errors.GetMeta(err)
//
// # Validation Errors
//
// Using the validation builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateRange("stats.abilities.strength", score, 1, 30, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # gRPC Integration
//
// Converting to gRPC:
//
//	func (h *Handler) GetBattle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
//	    output, err := h.battleService.GetBattle(ctx, input)
//	    if err != nil {
//	        return nil, errors.ToGRPCError(err)
//	    }
//	    return encode(output)
//	}
//
// The status message joins the messages along the cause chain. The code,
// message and metadata travel as a structpb.Struct detail.
//
// Converting from gRPC:
//
//	resp, err := client.Call(ctx, v1alpha1.MethodGetBattle, req)
//	if err != nil {
//	    err = errors.FromGRPCError(err)
//	    for field, msgs := range errors.ValidationErrors(err) {
//	        fmt.Printf("%s: %v\n", field, msgs)
//	    }
//	    return nil, err
//	}
//
// # Layer-Specific Guidelines
//
// Repository layer:
//   - Return domain-specific errors (NotFound, AlreadyExists)
//   - Include relevant IDs in metadata
//   - Wrap database errors with context
//
// Service/Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Check preconditions and return FailedPrecondition errors
//   - Wrap repository errors with business context
//
// Handler layer:
//   - Convert errors to gRPC format
//   - Extract user-friendly messages
//   - Log internal errors for debugging
//
// # Error Codes
//
// Codes mirror the gRPC codes the battle service returns:
//   - InvalidArgument: bad request fields, unknown actions or targets
//   - FailedPrecondition: the battle's state forbids the operation
//   - NotFound: unknown battle, stat block or archived record
//   - AlreadyExists: a battle archived twice
//   - Unavailable, DeadlineExceeded: retryable dependency failures
//   - Internal: everything else
package errors
