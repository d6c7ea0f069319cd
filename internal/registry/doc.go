// Package registry holds generator definitions and turns them into the
// resolved, ordered resolver lists the composer consults.
//
// Key rules:
//   - Resolver kinds are a closed sum (primitive, universal, combiner,
//     custom-type); the composer dispatches on concrete kinds
//   - Within a resolved generator, amendment resolvers precede the
//     generator's own, and a later amendment batch precedes an earlier one
//   - Capability gating is threaded through an explicit ActivationContext;
//     there is no ambient state
//   - Registry building never fails: dead amendments and deactivated
//     generators are silently pruned
package registry
