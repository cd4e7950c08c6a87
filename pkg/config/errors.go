package config

import "errors"

var (
	// ErrAPIBaseURLRequired is returned when api.base_url is empty
	ErrAPIBaseURLRequired = errors.New("api base_url is required")

	// ErrInvalidAPIBaseURL is returned when api.base_url is not an absolute http(s) URL
	ErrInvalidAPIBaseURL = errors.New("api base_url must be an absolute http or https URL")

	// ErrInvalidDuration is returned when a duration field cannot be parsed
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrInvalidRegisterFlow is returned when auth.register_flow is not "confirm" or "reset"
	ErrInvalidRegisterFlow = errors.New("invalid register_flow (allowed: confirm, reset)")

	// ErrInvalidLocale is returned when locale.default is not a supported language
	ErrInvalidLocale = errors.New("invalid default locale (allowed: en, pt)")

	// ErrInvalidStorageType is returned when storage.type is unknown
	ErrInvalidStorageType = errors.New("invalid storage type (allowed: memory, leveldb, redis)")

	// ErrRedisAddrRequired is returned when the redis store is selected without an address
	ErrRedisAddrRequired = errors.New("storage.redis.addr is required for the redis store")

	// ErrInvalidSenderType is returned when mail.sender_type is unknown
	ErrInvalidSenderType = errors.New("invalid mail sender_type (allowed: smtp, sendgrid)")

	// ErrMailDigestToRequired is returned when mail is enabled without a recipient
	ErrMailDigestToRequired = errors.New("mail.digest_to is required when mail is enabled")

	// ErrSMTPHostRequired is returned when the smtp sender has no host
	ErrSMTPHostRequired = errors.New("mail.smtp.host is required for the smtp sender")

	// ErrSendGridAPIKeyRequired is returned when the sendgrid sender has no API key
	ErrSendGridAPIKeyRequired = errors.New("mail.sendgrid.api_key is required for the sendgrid sender")

	// ErrConfigFileNotFound is returned when config file is not found
	ErrConfigFileNotFound = errors.New("configuration file not found")
)
