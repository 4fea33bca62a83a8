package math3d

import "math"

// Vec3 is a 3D vector
type Vec3 struct {
	X, Y, Z float64
}

// Right-handed axes, Y up, -Z forward.
var (
	Zero    = Vec3{}
	Up      = Vec3{0, 1, 0}
	Forward = Vec3{0, 0, -1}
	Right   = Vec3{1, 0, 0}
)

func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}
func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// IsZero reports whether every component is exactly zero.
func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// Normalize returns the unit vector, or the zero vector for near-zero input
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-10 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// ApproxEqual compares component-wise within eps
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

// Vec4 for homogeneous coords
type Vec4 struct {
	X, Y, Z, W float64
}

// Mat4 is a 4x4 matrix (column-major)
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

func Mat4Translate(tx, ty, tz float64) Mat4 {
	m := Mat4Identity()
	m[12], m[13], m[14] = tx, ty, tz
	return m
}

func Mat4RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Mat4Identity()
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

// Mat4World builds an object-to-world matrix: columns are right, up,
// backward and the translation.
func Mat4World(position, forward, up Vec3) Mat4 {
	f := forward.Normalize()
	r := f.Cross(up).Normalize()
	u := r.Cross(f)
	var m Mat4
	m[0], m[1], m[2] = r.X, r.Y, r.Z
	m[4], m[5], m[6] = u.X, u.Y, u.Z
	m[8], m[9], m[10] = -f.X, -f.Y, -f.Z
	m[12], m[13], m[14] = position.X, position.Y, position.Z
	m[15] = 1
	return m
}

// Mul multiplies two matrices
func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				r[j*4+i] += a[k*4+i] * b[j*4+k]
			}
		}
	}
	return r
}

// MulVec4 multiplies matrix by vec4
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// TransformDir transforms a direction (w=0), ignoring translation
func (m Mat4) TransformDir(v Vec3) Vec3 {
	r := m.MulVec4(Vec4{v.X, v.Y, v.Z, 0})
	return Vec3{r.X, r.Y, r.Z}
}

// Translation returns the translation column
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}
