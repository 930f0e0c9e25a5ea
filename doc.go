// Package adminkit provides the presentation-layer glue for a web app that
// delegates authentication to an external identity service: route guards
// that gate navigation by admin-registry membership, display formatters for
// templates, and the admin-invite endpoint that provisions or demotes
// accounts.
//
// Registry model:
//   - An account is an administrator when a row exists in the admins table,
//     and a regular user when a row exists in user_profiles. For any account
//     id at most one of the two rows should exist; the provisioning workflow
//     maintains this by upserting into one table and deleting from the other
//     in the same operation. The two writes are not wrapped in a transaction,
//     so a crash between them can leave the registry briefly inconsistent.
//
// Guards:
//   - AdminOnly, GuestOnly, and UserOnly middleware resolve the session from
//     the identity-service access token, consult the admin registry, and
//     redirect. Lookup failures always resolve toward the less-privileged
//     outcome.
//
// Provisioning:
//   - ProvisionAccountHandler resolves the target account (registry lookup,
//     then invite, then a bounded scan of the identity service's user list
//     when the invite reports the email already exists) and reconciles the
//     registry rows. Reconciliation is two-phase: the secondary cleanup is
//     best effort and partial outcomes are reported on the response rather
//     than failing the request.
package adminkit
