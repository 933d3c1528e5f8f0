package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

/**
 * @brief a 4x4 matrix, typically used to represent object and camera
 * transformations. Elements are stored column-major, so Data[12], Data[13]
 * and Data[14] hold the translation.
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}
