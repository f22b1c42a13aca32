package core

// appContext is shared by every component of one app.
type appContext struct {
	provides *provideTable
}

func newAppContext() *appContext {
	return &appContext{provides: newProvideTable(nil)}
}

// App mounts a root component into a container.
type App struct {
	r         *Renderer
	root      *Component
	rootProps Props
	context   *appContext

	container Node
	vnode     *VNode
}

func (r *Renderer) CreateApp(root *Component, rootProps Props) *App {
	return &App{
		r:         r,
		root:      root,
		rootProps: rootProps,
		context:   newAppContext(),
	}
}

// Provide makes value injectable by every component of the app.
func (a *App) Provide(key, value any) *App {
	a.context.provides.values[key] = value
	return a
}

// Mount renders the root component into container and returns its public
// instance. Mounting an already mounted app is a no-op.
func (a *App) Mount(container Node) *PublicInstance {
	if a.vnode != nil {
		a.r.logger.Warn("core: app already mounted")
		return a.vnode.Component.Proxy
	}
	vnode := H(a.root, a.rootProps)
	vnode.appContext = a.context
	a.r.Render(vnode, container)
	a.container = container
	a.vnode = vnode
	return vnode.Component.Proxy
}

func (a *App) Unmount() {
	if a.vnode == nil {
		return
	}
	a.r.Render(nil, a.container)
	a.vnode = nil
	a.container = nil
}
