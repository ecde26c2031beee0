package graphics

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked shader program with a cache of attribute and uniform
// locations. Locations are looked up once, right after linking, and read from
// the cache on every frame.
type Program struct {
	ID uint32

	attributes map[string]int32
	uniforms   map[string]int32
	warned     map[string]bool
	logger     *slog.Logger
}

// NewProgram creates a new shader program from vertex and fragment shader source files
func NewProgram(vertexPath, fragmentPath string) (*Program, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("could not read vertex shader file: %w", err)
	}

	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("could not read fragment shader file: %w", err)
	}

	program, err := compileProgram(string(vertexSource), string(fragmentSource))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", vertexPath, err)
	}

	return &Program{
		ID:         program,
		attributes: make(map[string]int32),
		uniforms:   make(map[string]int32),
		warned:     make(map[string]bool),
		logger:     slog.Default().With("module", "shader"),
	}, nil
}

// Use activates the shader program
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Unuse unbinds any program
func (p *Program) Unuse() {
	gl.UseProgram(0)
}

// Delete releases the GL program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// AddAttribute looks up and caches the location of a vertex attribute.
func (p *Program) AddAttribute(name string) int32 {
	loc := gl.GetAttribLocation(p.ID, gl.Str(name+"\x00"))
	p.attributes[name] = loc
	if loc < 0 {
		p.warnOnce("attribute", name)
	}
	return loc
}

// AddUniform looks up and caches the location of a uniform.
func (p *Program) AddUniform(name string) int32 {
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	if loc < 0 {
		p.warnOnce("uniform", name)
	}
	return loc
}

// Attrib returns a cached attribute location, or -1 if it was never added.
func (p *Program) Attrib(name string) int32 {
	if loc, ok := p.attributes[name]; ok {
		return loc
	}
	p.warnOnce("attribute", name)
	return -1
}

// Uniform returns a cached uniform location, or -1 if it was never added.
// GL ignores uploads to location -1.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	p.warnOnce("uniform", name)
	return -1
}

func (p *Program) warnOnce(kind, name string) {
	key := kind + ":" + name
	if p.warned[key] {
		return
	}
	p.warned[key] = true
	p.logger.Warn("shader location not found", "kind", kind, "name", name, "program", p.ID)
}

// SetInt sets an integer uniform
func (p *Program) SetInt(name string, value int32) {
	gl.Uniform1i(p.Uniform(name), value)
}

// SetFloat sets a float uniform
func (p *Program) SetFloat(name string, value float32) {
	gl.Uniform1f(p.Uniform(name), value)
}

// SetVec3 sets a vec3 uniform
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.Uniform(name), v[0], v[1], v[2])
}

// SetMatrix4 sets a 4x4 matrix uniform
func (p *Program) SetMatrix4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, &m[0])
}

// Helper functions
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile %s shader: %v", shaderKind(shaderType), strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func shaderKind(t uint32) string {
	switch t {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	}
	return "unknown"
}
