// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package api is the client side of the EstateHub HTTP API.

Client and Authenticator are the interfaces the session controller depends
on; HTTPClient implements both over JSON:

	c := api.NewHTTPClient("http://localhost:3318", 10*time.Second)
	user, err := c.Login(ctx, models.Credentials{Username: "ana", Password: "secret1"})

Login stores the returned bearer token and every later call sends it.
Logout forgets it.

# Errors

Non-2xx responses come back as *Error, which unwraps to a sentinel:

	401 on login    → ErrInvalidCredentials
	401 elsewhere   → ErrAuthorization
	403             → ErrAuthorization
	404             → ErrNotFound
	409 on register → ErrDuplicateUser
	409 elsewhere   → ErrConflict
	400             → ErrValidation

Check them with errors.Is.
*/
package api
