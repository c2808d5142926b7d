// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	AuthorisationError GenericError
	ExistsError        GenericError
	InvalidError       GenericError
	NotFoundError      GenericError
	ProcessError       GenericError
	TransportError     GenericError
)

// common errors - keep in alphabetic order
var (
	AlreadyInitialised             = ProcessError("already initialised")
	AuthorisationNotFound          = NotFoundError("authorisation not found")
	CannotDecodeAccount            = InvalidError("cannot decode account")
	CannotDecodePrivateKey         = InvalidError("cannot decode private key")
	CertificateFileAlreadyExists   = ExistsError("certificate file already exists")
	ChecksumMismatch               = ProcessError("checksum mismatch")
	ConfigurationFileTypeInvalid   = InvalidError("configuration file type invalid")
	DatabaseEngineInvalid          = InvalidError("database engine invalid")
	DatabaseIsNotSet               = ProcessError("database is not set")
	EmptyFieldName                 = InvalidError("empty field name")
	EmptyFieldValue                = InvalidError("empty field value")
	EmptyPoolId                    = InvalidError("empty pool id")
	FieldNameTooLong               = InvalidError("field name too long")
	FieldValueTooLong              = InvalidError("field value too long")
	FingerprintMismatch            = AuthorisationError("certificate fingerprint mismatch")
	IdentityFileAlreadyExists      = ExistsError("identity file already exists")
	InvalidChain                   = InvalidError("invalid chain")
	InvalidCount                   = InvalidError("invalid count")
	InvalidFingerprint             = InvalidError("invalid certificate fingerprint")
	InvalidInvocation              = InvalidError("invalid invocation")
	InvalidIpAddress               = InvalidError("invalid IP Address")
	InvalidKeyLength               = InvalidError("invalid key length")
	InvalidKeyType                 = InvalidError("invalid key type")
	InvalidPortNumber              = InvalidError("invalid port number")
	InvalidSignature               = InvalidError("invalid signature")
	InvalidStructPointer           = InvalidError("invalid struct pointer")
	InvalidTransition              = ProcessError("invalid state transition")
	KeyFileAlreadyExists           = ExistsError("key file already exists")
	MissingParameters              = InvalidError("missing parameters")
	NotAvailable                   = ProcessError("service not available")
	NotInitialised                 = ProcessError("not initialised")
	NotOwner                       = AuthorisationError("not owner of pool")
	NotPrivateKey                  = InvalidError("not private key")
	NotPublicKey                   = InvalidError("not public key")
	NotWhitelisted                 = AuthorisationError("pool was not whitelisted")
	PoolNotFound                   = NotFoundError("pool not found")
	QueueFull                      = ProcessError("verification queue full")
	RateLimiting                   = InvalidError("rate limiting")
	RequestExpired                 = InvalidError("request timestamp expired")
	ResolutionTimeout              = ProcessError("resolution budget exceeded")
	TransportFailure               = TransportError("verification transport failure")
	UnauthorisedCallback           = AuthorisationError("unauthorised callback")
	UnsupportedConfigurationFormat = InvalidError("unsupported configuration format")
	WhitelistAuthorityNotSet       = InvalidError("whitelist authority not set")
	WrongNetworkForPublicKey       = InvalidError("wrong network for public key")
)

// the error interface methods
func (e GenericError) Error() string       { return string(e) }
func (e AuthorisationError) Error() string { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e TransportError) Error() string     { return string(e) }

// determine the class of an error, looking through any wrapping
// added with fmt.Errorf("…%w", …)
func IsErrAuthorisation(e error) bool { var t AuthorisationError; return errors.As(e, &t) }
func IsErrExists(e error) bool        { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool       { var t InvalidError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool      { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool       { var t ProcessError; return errors.As(e, &t) }
func IsErrTransport(e error) bool     { var t TransportError; return errors.As(e, &t) }
