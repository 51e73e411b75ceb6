// Package curve 提供具名短 Weierstrass 曲线的参数表与通用后端
//
// 参数表覆盖 SEC 2 / X9.62 素数域曲线。除 secp256k1 使用专用后端外，
// 其余曲线都由本包的 Backend 以 big.Int 雅可比坐标完成点运算。
package curve

import (
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/weisyn/ecc/pkg/types"
)

// Params 曲线 y² = x³ + ax + b (mod p) 的参数
type Params struct {
	Name     string
	P        *big.Int // 域素数
	A        *big.Int // 一次项系数，已规约到 [0, p)
	B        *big.Int // 常数项
	N        *big.Int // 基点阶
	Gx, Gy   *big.Int // 基点
	Cofactor int

	// FieldLength 域元素字节长度 L
	FieldLength int
	// ScalarLength 阶的字节长度 SL
	ScalarLength int

	aIsMinus3 bool
	halfN     *big.Int
}

type curveSpec struct {
	p, a, b, n, gx, gy string
	h                  int
}

// 十六进制参数；a 为 "-3" 表示 a = p - 3
var curveSpecs = map[string]curveSpec{
	types.CurveSecp112r1: {
		p:  "DB7C2ABF62E35E668076BEAD208B",
		a:  "-3",
		b:  "659EF8BA043916EEDE8911702B22",
		n:  "DB7C2ABF62E35E7628DFAC6561C5",
		gx: "9487239995A5EE76B55F9C2F098",
		gy: "A89CE5AF8724C0A23E0E0FF77500",
		h:  1,
	},
	types.CurveSecp112r2: {
		p:  "DB7C2ABF62E35E668076BEAD208B",
		a:  "6127C24C05F38A0AAAF65C0EF02C",
		b:  "51DEF1815DB5ED74FCC34C85D709",
		n:  "36DF0AAFD8B8D7597CA10520D04B",
		gx: "4BA30AB5E892B4E1649DD0928643",
		gy: "ADCD46F5882E3747DEF36E956E97",
		h:  4,
	},
	types.CurveSecp128r1: {
		p:  "FFFFFFFDFFFFFFFFFFFFFFFFFFFFFFFF",
		a:  "-3",
		b:  "E87579C11079F43DD824993C2CEE5ED3",
		n:  "FFFFFFFE0000000075A30D1B9038A115",
		gx: "161FF7528B899B2D0C28607CA52C5B86",
		gy: "CF5AC8395BAFEB13C02DA292DDED7A83",
		h:  1,
	},
	types.CurveSecp128r2: {
		p:  "FFFFFFFDFFFFFFFFFFFFFFFFFFFFFFFF",
		a:  "D6031998D1B3BBFEBF59CC9BBFF9AEE1",
		b:  "5EEEFCA380D02919DC2C6558BB6D8A5D",
		n:  "3FFFFFFF7FFFFFFFBE0024720613B5A3",
		gx: "7B6AA5D85E572983E6FB32A7CDEBC140",
		gy: "27B6916A894D3AEE7106FE805FC34B44",
		h:  4,
	},
	types.CurveSecp160k1: {
		p:  "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFAC73",
		a:  "0",
		b:  "7",
		n:  "100000000000000000001B8FA16DFAB9ACA16B6B3",
		gx: "3B4C382CE37AA192A4019E763036F4F5DD4D7EBB",
		gy: "938CF935318FDCED6BC28286531733C3F03C4FEE",
		h:  1,
	},
	types.CurveSecp160r1: {
		p:  "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF7FFFFFFF",
		a:  "-3",
		b:  "1C97BEFC54BD7A8B65ACF89F81D4D4ADC565FA45",
		n:  "100000000000000000001F4C8F927AED3CA752257",
		gx: "4A96B5688EF573284664698968C38BB913CBFC82",
		gy: "23A628553168947D59DCC912042351377AC5FB32",
		h:  1,
	},
	types.CurveSecp160r2: {
		p:  "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFAC73",
		a:  "-3",
		b:  "B4E134D3FB59EB8BAB57274904664D5AF50388BA",
		n:  "100000000000000000000351EE786A818F3A1A16B",
		gx: "52DCB034293A117E1F4FF11B30F7199D3144CE6D",
		gy: "FEAFFEF2E331F296E071FA0DF9982CFEA7D43F2E",
		h:  1,
	},
	types.CurveSecp192k1: {
		p:  "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFEE37",
		a:  "0",
		b:  "3",
		n:  "FFFFFFFFFFFFFFFFFFFFFFFE26F2FC170F69466A74DEFD8D",
		gx: "DB4FF10EC057E9AE26B07D0280B7F4341DA5D1B1EAE06C7D",
		gy: "9B2F2F6D9C5628A7844163D015BE86344082AA88D95E2F9D",
		h:  1,
	},
	types.CurvePrime192v1: {
		p:  "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFFFFFFFFFF",
		a:  "-3",
		b:  "64210519E59C80E70FA7E9AB72243049FEB8DEECC146B9B1",
		n:  "FFFFFFFFFFFFFFFFFFFFFFFF99DEF836146BC9B1B4D22831",
		gx: "188DA80EB03090F67CBF20EB43A18800F4FF0AFD82FF1012",
		gy: "7192B95FFC8DA78631011ED6B24CDD573F977A11E794811",
		h:  1,
	},
	types.CurveSecp224k1: {
		p:  "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFE56D",
		a:  "0",
		b:  "5",
		n:  "10000000000000000000000000001DCE8D2EC6184CAF0A971769FB1F7",
		gx: "A1455B334DF099DF30FC28A169A467E9E47075A90F7E650EB6B7A45C",
		gy: "7E089FED7FBA344282CAFBD6F7E319F7C0B0BD59E2CA4BDB556D61A5",
		h:  1,
	},
	types.CurveSecp224r1: {
		p:  "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF000000000000000000000001",
		a:  "-3",
		b:  "B4050A850C04B3ABF54132565044B0B7D7BFD8BA270B39432355FFB4",
		n:  "FFFFFFFFFFFFFFFFFFFFFFFFFFFF16A2E0B8F03E13DD29455C5C2A3D",
		gx: "B70E0CBD6BB4BF7F321390B94A03C1D356C21122343280D6115C1D21",
		gy: "BD376388B5F723FB4C22DFE6CD4375A05A07476444D5819985007E34",
		h:  1,
	},
	types.CurveSecp256k1: {
		p:  "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F",
		a:  "0",
		b:  "7",
		n:  "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141",
		gx: "79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798",
		gy: "483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8",
		h:  1,
	},
	types.CurvePrime256v1: {
		p:  "FFFFFFFF00000001000000000000000000000000FFFFFFFFFFFFFFFFFFFFFFFF",
		a:  "-3",
		b:  "5AC635D8AA3A93E7B3EBBD55769886BC651D06B0CC53B0F63BCE3C3E27D2604B",
		n:  "FFFFFFFF00000000FFFFFFFFFFFFFFFFBCE6FAADA7179E84F3B9CAC2FC632551",
		gx: "6B17D1F2E12C4247F8BCE6E563A440F277037D812DEB33A0F4A13945D898C296",
		gy: "4FE342E2FE1A7F9B8EE7EB4A7C0F9E162BCE33576B315ECECBB6406837BF51F5",
		h:  1,
	},
	types.CurveSecp384r1: {
		p:  "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFF0000000000000000FFFFFFFF",
		a:  "-3",
		b:  "B3312FA7E23EE7E4988E056BE3F82D19181D9C6EFE8141120314088F5013875AC656398D8A2ED19D2A85C8EDD3EC2AEF",
		n:  "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFC7634D81F4372DDF581A0DB248B0A77AECEC196ACCC52973",
		gx: "AA87CA22BE8B05378EB1C71EF320AD746E1D3B628BA79B9859F741E082542A385502F25DBF55296C3A545E3872760AB7",
		gy: "3617DE4A96262C6F5D9E98BF9292DC29F8F41DBD289A147CE9DA3113B5F0B8C00A60B1CE1D7E819D7A431D7C90EA0E5F",
		h:  1,
	},
	types.CurveSecp521r1: {
		p:  "1FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF",
		a:  "-3",
		b:  "51953EB9618E1C9A1F929A21A0B68540EEA2DA725B99B315F3B8B489918EF109E156193951EC7E937B1652C0BD3BB1BF073573DF883D2C34F1EF451FD46B503F00",
		n:  "1FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFA51868783BF2F966B7FCC0148F709A5D03BB5C9B8899C47AEBB6FB71E91386409",
		gx: "C6858E06B70404E9CD9E3ECB662395B4429C648139053FB521F828AF606B4D3DBAA14B5E77EFE75928FE1DC127A2FFA8DE3348B3C1856A429BF97E7E31C2E5BD66",
		gy: "11839296A789A3BC0045C8A5FB42C7D1BD998F54449579B446817AFBD17273E662C97EE72995EF42640C550B9013FAD0761353C7086A272C24088BE94769FD16650",
		h:  1,
	},
}

// 别名，按 NIST 命名
var aliases = map[string]string{
	"P-192": types.CurvePrime192v1,
	"P-224": types.CurveSecp224r1,
	"P-256": types.CurvePrime256v1,
	"P-384": types.CurveSecp384r1,
	"P-521": types.CurveSecp521r1,
}

var (
	paramsOnce  sync.Once
	paramsTable map[string]*Params
)

func loadParams() {
	paramsTable = make(map[string]*Params, len(curveSpecs))
	for name, spec := range curveSpecs {
		paramsTable[name] = spec.build(name)
	}
}

func (s curveSpec) build(name string) *Params {
	p := mustHex(s.p)
	a := mustHex(s.a)
	a.Mod(a, p)

	params := &Params{
		Name:     name,
		P:        p,
		A:        a,
		B:        mustHex(s.b),
		N:        mustHex(s.n),
		Gx:       mustHex(s.gx),
		Gy:       mustHex(s.gy),
		Cofactor: s.h,
	}
	params.FieldLength = (p.BitLen() + 7) / 8
	params.ScalarLength = (params.N.BitLen() + 7) / 8
	params.aIsMinus3 = new(big.Int).Sub(p, big.NewInt(3)).Cmp(a) == 0
	params.halfN = new(big.Int).Rsh(params.N, 1)
	return params
}

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic(fmt.Sprintf("curve: bad hex constant %q", s))
	}
	return v
}

// CanonicalName 将别名解析为规范曲线名
func CanonicalName(name string) (string, error) {
	if canonical, ok := aliases[name]; ok {
		return canonical, nil
	}
	if _, ok := curveSpecs[name]; ok {
		return name, nil
	}
	return "", types.NewECCError(types.ErrUnknownCurve, fmt.Sprintf("unknown curve %q", name))
}

// Lookup 返回曲线参数；别名同样有效
func Lookup(name string) (*Params, error) {
	canonical, err := CanonicalName(name)
	if err != nil {
		return nil, err
	}
	paramsOnce.Do(loadParams)
	return paramsTable[canonical], nil
}

// Names 返回所有规范曲线名（已排序）
func Names() []string {
	names := make([]string, 0, len(curveSpecs))
	for name := range curveSpecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsOnCurve 判断仿射点 (x, y) 是否满足曲线方程且坐标在 [0, p) 内
func (c *Params) IsOnCurve(x, y *big.Int) bool {
	if x == nil || y == nil || x.Sign() < 0 || y.Sign() < 0 ||
		x.Cmp(c.P) >= 0 || y.Cmp(c.P) >= 0 {
		return false
	}
	y2 := new(big.Int).Mul(y, y)
	y2.Mod(y2, c.P)
	return c.polynomial(x).Cmp(y2) == 0
}

// polynomial 返回 x³ + ax + b mod p
func (c *Params) polynomial(x *big.Int) *big.Int {
	x3 := new(big.Int).Mul(x, x)
	x3.Add(x3, c.A)
	x3.Mul(x3, x)
	x3.Add(x3, c.B)
	return x3.Mod(x3, c.P)
}

// IsOverHalfOrder 判断 s > n/2
func (c *Params) IsOverHalfOrder(s *big.Int) bool {
	return s.Cmp(c.halfN) > 0
}
