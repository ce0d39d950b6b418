// Package user holds the directory entries the order workflow references:
// admins, sellers and drivers, plus the Actor value passed explicitly into
// every command and query in place of an ambient "current user".
package user
