package curve

import "math/big"

// 点运算在雅可比坐标下进行：仿射点 (x, y) 对应 (X, Y, Z)，x = X/Z²，y = Y/Z³。
// Z = 0 表示无穷远点。仿射接口中用 (0, 0) 表示无穷远点，
// 本包支持的曲线上 (0, 0) 都不是合法点。
//
// 实现为变时间算法，只用于 secp256k1 以外的曲线。

type jacobianPoint struct {
	x, y, z *big.Int
}

func newInfinity() jacobianPoint {
	return jacobianPoint{x: new(big.Int), y: new(big.Int), z: new(big.Int)}
}

func fromAffine(x, y *big.Int) jacobianPoint {
	z := new(big.Int)
	if x.Sign() != 0 || y.Sign() != 0 {
		z.SetInt64(1)
	}
	return jacobianPoint{x: new(big.Int).Set(x), y: new(big.Int).Set(y), z: z}
}

func (pt jacobianPoint) isInfinity() bool {
	return pt.z.Sign() == 0
}

// toAffine 还原仿射坐标，无穷远点返回 (0, 0)
func (c *Params) toAffine(pt jacobianPoint) (*big.Int, *big.Int) {
	if pt.isInfinity() {
		return new(big.Int), new(big.Int)
	}
	zInv := new(big.Int).ModInverse(pt.z, c.P)
	zInv2 := new(big.Int).Mul(zInv, zInv)

	x := new(big.Int).Mul(pt.x, zInv2)
	x.Mod(x, c.P)
	zInv2.Mul(zInv2, zInv)
	y := new(big.Int).Mul(pt.y, zInv2)
	y.Mod(y, c.P)
	return x, y
}

// addJacobian 计算 p1 + p2
// 公式：hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#addition-add-2007-bl
func (c *Params) addJacobian(p1, p2 jacobianPoint) jacobianPoint {
	if p1.isInfinity() {
		return jacobianPoint{x: new(big.Int).Set(p2.x), y: new(big.Int).Set(p2.y), z: new(big.Int).Set(p2.z)}
	}
	if p2.isInfinity() {
		return jacobianPoint{x: new(big.Int).Set(p1.x), y: new(big.Int).Set(p1.y), z: new(big.Int).Set(p1.z)}
	}

	z1z1 := new(big.Int).Mul(p1.z, p1.z)
	z1z1.Mod(z1z1, c.P)
	z2z2 := new(big.Int).Mul(p2.z, p2.z)
	z2z2.Mod(z2z2, c.P)

	u1 := new(big.Int).Mul(p1.x, z2z2)
	u1.Mod(u1, c.P)
	u2 := new(big.Int).Mul(p2.x, z1z1)
	u2.Mod(u2, c.P)
	h := new(big.Int).Sub(u2, u1)
	h.Mod(h, c.P)
	xEqual := h.Sign() == 0

	s1 := new(big.Int).Mul(p1.y, p2.z)
	s1.Mul(s1, z2z2)
	s1.Mod(s1, c.P)
	s2 := new(big.Int).Mul(p2.y, p1.z)
	s2.Mul(s2, z1z1)
	s2.Mod(s2, c.P)
	r := new(big.Int).Sub(s2, s1)
	r.Mod(r, c.P)
	yEqual := r.Sign() == 0

	if xEqual && yEqual {
		return c.doubleJacobian(p1)
	}
	if xEqual {
		// p2 = -p1
		return newInfinity()
	}

	i := new(big.Int).Lsh(h, 1)
	i.Mul(i, i)
	j := new(big.Int).Mul(h, i)
	r.Lsh(r, 1)
	v := new(big.Int).Mul(u1, i)

	// X3 = r² - J - 2V
	x3 := new(big.Int).Mul(r, r)
	x3.Sub(x3, j)
	x3.Sub(x3, v)
	x3.Sub(x3, v)
	x3.Mod(x3, c.P)

	// Y3 = r(V - X3) - 2·S1·J
	y3 := new(big.Int).Sub(v, x3)
	y3.Mul(y3, r)
	s1.Mul(s1, j)
	s1.Lsh(s1, 1)
	y3.Sub(y3, s1)
	y3.Mod(y3, c.P)

	// Z3 = ((Z1+Z2)² - Z1Z1 - Z2Z2)·H
	z3 := new(big.Int).Add(p1.z, p2.z)
	z3.Mul(z3, z3)
	z3.Sub(z3, z1z1)
	z3.Sub(z3, z2z2)
	z3.Mul(z3, h)
	z3.Mod(z3, c.P)

	return jacobianPoint{x: x3, y: y3, z: z3}
}

// doubleJacobian 计算 2·pt
func (c *Params) doubleJacobian(pt jacobianPoint) jacobianPoint {
	if pt.isInfinity() || pt.y.Sign() == 0 {
		return newInfinity()
	}

	delta := new(big.Int).Mul(pt.z, pt.z)
	delta.Mod(delta, c.P)
	gamma := new(big.Int).Mul(pt.y, pt.y)
	gamma.Mod(gamma, c.P)

	var alpha *big.Int
	if c.aIsMinus3 {
		// a = -3 时 3x² + a·δ² = 3(x - δ)(x + δ)
		alpha = new(big.Int).Sub(pt.x, delta)
		sum := new(big.Int).Add(pt.x, delta)
		alpha.Mul(alpha, sum)
		sum.Set(alpha)
		alpha.Lsh(alpha, 1)
		alpha.Add(alpha, sum)
	} else {
		// M = 3x² + a·δ²
		x2 := new(big.Int).Mul(pt.x, pt.x)
		alpha = new(big.Int).Lsh(x2, 1)
		alpha.Add(alpha, x2)
		if c.A.Sign() != 0 {
			d2 := new(big.Int).Mul(delta, delta)
			d2.Mul(d2, c.A)
			alpha.Add(alpha, d2)
		}
	}
	alpha.Mod(alpha, c.P)

	beta4 := new(big.Int).Mul(pt.x, gamma)
	beta4.Lsh(beta4, 2)
	beta4.Mod(beta4, c.P)

	// X3 = α² - 8β
	x3 := new(big.Int).Mul(alpha, alpha)
	x3.Sub(x3, new(big.Int).Lsh(beta4, 1))
	x3.Mod(x3, c.P)

	// Z3 = 2·Y·Z
	z3 := new(big.Int).Mul(pt.y, pt.z)
	z3.Lsh(z3, 1)
	z3.Mod(z3, c.P)

	// Y3 = α(4β - X3) - 8γ²
	beta4.Sub(beta4, x3)
	y3 := alpha.Mul(alpha, beta4)
	gamma.Mul(gamma, gamma)
	gamma.Lsh(gamma, 3)
	y3.Sub(y3, gamma)
	y3.Mod(y3, c.P)

	return jacobianPoint{x: x3, y: y3, z: z3}
}

// scalarMultJacobian 从高位到低位的倍加算法
func (c *Params) scalarMultJacobian(base jacobianPoint, k *big.Int) jacobianPoint {
	acc := newInfinity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		acc = c.doubleJacobian(acc)
		if k.Bit(i) == 1 {
			acc = c.addJacobian(acc, base)
		}
	}
	return acc
}

// ScalarMult 计算 k·(x, y)，结果为无穷远点时返回 (0, 0)
func (c *Params) ScalarMult(x, y, k *big.Int) (*big.Int, *big.Int) {
	return c.toAffine(c.scalarMultJacobian(fromAffine(x, y), k))
}

// ScalarBaseMult 计算 k·G
func (c *Params) ScalarBaseMult(k *big.Int) (*big.Int, *big.Int) {
	return c.ScalarMult(c.Gx, c.Gy, k)
}

// Add 计算 (x1, y1) + (x2, y2)
func (c *Params) Add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int) {
	return c.toAffine(c.addJacobian(fromAffine(x1, y1), fromAffine(x2, y2)))
}

// combinedMult 计算 u1·G + u2·(x, y)
func (c *Params) combinedMult(x, y, u1, u2 *big.Int) jacobianPoint {
	p1 := c.scalarMultJacobian(fromAffine(c.Gx, c.Gy), u1)
	p2 := c.scalarMultJacobian(fromAffine(x, y), u2)
	return c.addJacobian(p1, p2)
}

// DecompressY 由 x 和奇偶性求 y；x 不在曲线上时返回 false
func (c *Params) DecompressY(x *big.Int, odd bool) (*big.Int, bool) {
	if x.Sign() < 0 || x.Cmp(c.P) >= 0 {
		return nil, false
	}
	y := new(big.Int).ModSqrt(c.polynomial(x), c.P)
	if y == nil {
		return nil, false
	}
	if (y.Bit(0) == 1) != odd {
		if y.Sign() == 0 {
			return nil, false
		}
		y.Sub(c.P, y)
	}
	return y, true
}
