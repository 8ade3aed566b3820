package authz

import "github.com/jhoicas/proveedores-api/pkg/jwt"

// Reason motivo de una denegación.
type Reason string

const (
	ReasonInvalidToken       Reason = "INVALID_TOKEN"
	ReasonPolicyNotSatisfied Reason = "POLICY_NOT_SATISFIED"
)

// Decision resultado de evaluar un token contra una política. Si Allowed es true,
// Claims trae el contenido verificado del token.
type Decision struct {
	Allowed bool
	Reason  Reason
	Claims  *jwt.Claims
}

// Requirement predicado sobre un claim del token. Value vacío exige solo presencia.
type Requirement struct {
	Claim string
	Value string
}

// RequireClaim construye un requisito de claim con valor exacto.
func RequireClaim(claim, value string) Requirement {
	return Requirement{Claim: claim, Value: value}
}

// Engine evalúa políticas nombradas contra los claims embebidos en el token.
// Las políticas se registran al construir el servicio; la evaluación es pura y
// sin efectos secundarios, segura bajo concurrencia sin locks.
type Engine struct {
	secret   string
	policies map[string][]Requirement
}

// NewEngine construye el motor con el secret de verificación de tokens.
func NewEngine(secret string) *Engine {
	return &Engine{secret: secret, policies: make(map[string][]Requirement)}
}

// Register registra una política nombrada con sus requisitos de claims.
func (e *Engine) Register(name string, reqs ...Requirement) *Engine {
	e.policies[name] = reqs
	return e
}

// Authorize verifica primero firma y expiración (un token inválido se deniega
// sin importar la política) y después evalúa los requisitos de la política
// nombrada contra el snapshot de claims del token.
//
// policyName vacío es la política degenerada "solo autenticación": basta un
// token válido y no expirado. Una política desconocida se deniega.
func (e *Engine) Authorize(token, policyName string) Decision {
	claims, err := jwt.Parse(e.secret, token)
	if err != nil {
		return Decision{Reason: ReasonInvalidToken}
	}

	if policyName == "" {
		return Decision{Allowed: true, Claims: claims}
	}

	reqs, ok := e.policies[policyName]
	if !ok {
		return Decision{Reason: ReasonPolicyNotSatisfied}
	}
	for _, req := range reqs {
		value, present := claims.Claim(req.Claim)
		if !present {
			return Decision{Reason: ReasonPolicyNotSatisfied}
		}
		if req.Value != "" && value != req.Value {
			return Decision{Reason: ReasonPolicyNotSatisfied}
		}
	}
	return Decision{Allowed: true, Claims: claims}
}
