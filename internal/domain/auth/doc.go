// Package auth defines sign up, sign in, password recovery and magic link flows
// together with the token and mail contracts they rely on.
package auth
