// Package auth decides whether the current operator may see restricted
// figures.
//
// Credentials live in a CSV file with the header username,password,admin.
// The password cell holds an argon2id hash written by HashPassword, or a
// plain value in files created before hashing was introduced. The admin cell
// must read "admin" for the account to be authorized.
package auth
