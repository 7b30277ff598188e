// Package auth provides user accounts and authentication for HomeHub Core.
//
// It implements:
//   - User persistence with atomic uniqueness handling on username and email
//   - Input validation and email normalisation before persistence
//   - bcrypt password hashing with a configurable cost factor
//   - HS256 JWT access tokens issued on login
//   - First-boot seeding of the sample accounts
//
// Password hashes are never serialised: User.PasswordHash carries `json:"-"`
// and list/get queries do not select the column at all.
package auth
