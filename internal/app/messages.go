// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the human-readable messages written into the "msg"
// field of API responses. Clients display them verbatim, so the wording is
// part of the API.
package app

// Success messages.
const (
	MsgUserRegistered      = "User registered successfully"
	MsgLoginSuccessful     = "Login successful"
	MsgResetTokenGenerated = "Reset token generated"
	MsgPasswordUpdated     = "Password updated successfully"
	MsgUserUpdated         = "User updated successfully"
	MsgUserUpdatedWithFile = "User updated and file uploaded"
	MsgUserDeleted         = "User deleted successfully"
	MsgFileUploaded        = "File uploaded successfully"
	MsgFilesUploaded       = "Files uploaded"
	MsgFileUpdated         = "File updated successfully"
	MsgServerRunning       = "Server is running"
)

// Failure messages.
const (
	MsgInvalidDataProvided = "Invalid data provided"
	MsgNoFileUploaded      = "No file uploaded"
	MsgTooManyFiles        = "Too many files"
	MsgInvalidResetToken   = "Invalid or expired token"
	MsgInvalidCredentials  = "Invalid email or password"
	MsgUnauthorized        = "Unauthorized"
	MsgAccountNotActive    = "Account is not active"
	MsgRequestTooLarge     = "Request body too large"
	MsgRequestTimedOut     = "Request timed out"
	MsgEmailAlreadyExists  = "Email already registered"
	MsgUserNotFound        = "User not found"
	MsgFileNotFound        = "File not found"
	MsgRouteNotFound       = "Route not found"
	MsgMethodNotAllowed    = "Method not allowed"

	// MsgError is the fallback for errors without a dedicated message,
	// including every internal failure.
	MsgError = "Error"
)
