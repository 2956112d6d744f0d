// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, access tokens and id generation.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, candidate) // ErrInvalidCredentials on mismatch

# Access Tokens

Login issues an HS256 JWT carrying the user id and role:

	token, err := auth.IssueToken(user.ID, user.Role, secret, ttl)
	claims, err := auth.ParseToken(token, secret) // ErrInvalidToken when bad or expired

Only HS256 is accepted when parsing.

# ID Generation

Feedback ids are random UUIDs:

	id := auth.GenerateID()
*/
package auth
