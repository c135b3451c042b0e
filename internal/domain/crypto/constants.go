package crypto

// TotientVariant selects the modulus the private exponent is computed against.
type TotientVariant string

// TotientEuler computes d modulo phi(n) = (p-1)(q-1)
const TotientEuler TotientVariant = "euler"

// TotientCarmichael computes d modulo lambda(n) = lcm(p-1, q-1)
const TotientCarmichael TotientVariant = "carmichael"

// PublicKeyPEMType is the PEM block type of a serialized public key
const PublicKeyPEMType = "TEXTBOOK RSA PUBLIC KEY"

// PrivateKeyPEMType is the PEM block type of a serialized private key
const PrivateKeyPEMType = "TEXTBOOK RSA PRIVATE KEY"

// DefaultMaxExponentAttempts bounds the random public exponent draw when no limit is configured
const DefaultMaxExponentAttempts = 1000

// Redacted replaces sensitive values in log output
const Redacted = "REDACTED"

// IsValid reports whether v names a supported variant.
func (v TotientVariant) IsValid() bool {
	return v == TotientEuler || v == TotientCarmichael
}
